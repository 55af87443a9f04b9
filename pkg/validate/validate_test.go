package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsLuhn(t *testing.T) {
	assert.True(t, IsLuhn("2404815702"))
	assert.False(t, IsLuhn("2404815703"))
	assert.False(t, IsLuhn("not-a-number"))
}

func TestIsUUID(t *testing.T) {
	assert.True(t, IsUUID("6b1bb09c-9b38-4e2b-8d54-1a62cbd3fd6a"))
	assert.False(t, IsUUID("6b1bb09c"))
	assert.False(t, IsUUID(""))
}

func TestIsDataURI(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "Valid png", input: "data:image/png;base64,iVBORw0KGgo=", want: true},
		{name: "Valid jpeg", input: "data:image/jpeg;base64,/9j/4AAQ", want: true},
		{name: "Missing prefix", input: "image/png;base64,iVBORw0KGgo=", want: false},
		{name: "Not base64 encoded", input: "data:image/png,rawbytes", want: false},
		{name: "Empty payload", input: "data:image/png;base64,", want: false},
		{name: "Empty string", input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDataURI(tt.input))
		})
	}
}

func TestIsCardNumber(t *testing.T) {
	assert.True(t, IsCardNumber("4561261212345467"))
	assert.False(t, IsCardNumber("4561261212345464"))
	assert.False(t, IsCardNumber("123"))
	assert.False(t, IsCardNumber("4561-2612-1234-5467"))
}

func TestIsAccountNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "Plain bank account number", input: "0123456789", want: true},
		{name: "Long IBAN-style digits", input: "00012345678901234567890", want: true},
		{name: "Card number with valid checksum", input: "4561261212345467", want: true},
		{name: "Card-shaped number with bad checksum", input: "4561261212345464", want: false},
		{name: "Too short", input: "12345", want: false},
		{name: "Contains separators", input: "0123-456-789", want: false},
		{name: "Empty string", input: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAccountNumber(tt.input))
		})
	}
}
