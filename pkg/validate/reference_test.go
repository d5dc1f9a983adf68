package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPaymentReference(t *testing.T) {
	tests := []struct {
		name      string
		reference string
		expected  bool
	}{
		{name: "valid check digit", reference: "2377225624", expected: true},
		{name: "another valid reference", reference: "79927398713", expected: true},
		{name: "wrong check digit", reference: "2377225625", expected: false},
		{name: "letters", reference: "23772a5624", expected: false},
		{name: "too short", reference: "18", expected: false},
		{name: "too long", reference: "1234567890123456789012345", expected: false},
		{name: "empty", reference: "", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsPaymentReference(tt.reference))
		})
	}
}
