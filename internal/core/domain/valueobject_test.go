package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"minimal valid", "a@b.co", false},
		{"regular address", "maria.silva@example.com", false},
		{"missing tld", "foo@bar", true},
		{"embedded whitespace", "foo bar@baz.com", true},
		{"missing at", "foobar.baz.com", true},
		{"two ats", "foo@bar@baz.com", true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			email, err := NewEmail(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				var validation *ValidationError
				assert.ErrorAs(t, err, &validation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, email.String())
		})
	}
}

func TestNewCPF(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"punctuated", "123.456.789-00", false},
		{"bare digits", "12345678900", true},
		{"wrong grouping", "1234.56.789-00", true},
		{"missing dash", "123.456.78900", true},
		{"letters", "abc.def.ghi-jk", true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cpf, err := NewCPF(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, cpf.String())
		})
	}
}

func TestNewTotal(t *testing.T) {
	total, err := NewTotal([]OrderItem{
		{ProductID: "p1", Quantity: 2, UnitPrice: 9.5},
		{ProductID: "p2", Quantity: 1, UnitPrice: 4.25},
		{ProductID: "p3", Quantity: 3, UnitPrice: 0},
	})
	require.NoError(t, err)
	assert.InDelta(t, 23.25, total.Value(), 1e-9)
}

func TestNewTotalEmpty(t *testing.T) {
	total, err := NewTotal(nil)
	require.NoError(t, err)
	assert.Zero(t, total.Value())
}

func TestNewTotalRejectsInvalidItems(t *testing.T) {
	_, err := NewTotal([]OrderItem{{ProductID: "p1", Quantity: 0, UnitPrice: 1}})
	assert.Error(t, err)

	_, err = NewTotal([]OrderItem{{ProductID: "p1", Quantity: 1, UnitPrice: -0.01}})
	assert.Error(t, err)
}
