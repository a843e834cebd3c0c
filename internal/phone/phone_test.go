package phone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInput_DefaultsToBulgaria(t *testing.T) {
	in := NewInput()
	assert.Equal(t, "BG", in.Country().Code)
	assert.Equal(t, "", in.Value())
}

func TestInput_Type(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{"plain_digits", "0899175548", "0899175548"},
		{"keeps_formatting", "+359 89-917(5548)", "+359 89-917(5548)"},
		{"strips_letters", "089abc9175548", "0899175548"},
		{"strips_symbols", "089.917*5548", "0899175548"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			in := NewInput()
			in.Type(testCase.raw)
			assert.Equal(t, testCase.expected, in.Value())
		})
	}
}

func TestInput_Type_RejectsOverlongKeepingPrevious(t *testing.T) {
	in := NewInput()
	in.Type("+359899175548")
	in.Type("+3598991755481234567")

	assert.Equal(t, "+359899175548", in.Value())
}

func TestInput_SetCountry(t *testing.T) {
	in := NewInput()

	assert.True(t, in.SetCountry("GR"))
	assert.Equal(t, "GR", in.Country().Code)
	assert.Equal(t, "+30 ", in.Value())

	// A value already carrying "+" is left alone.
	in.Type("+359 89 917 5548")
	assert.True(t, in.SetCountry("RO"))
	assert.Equal(t, "+359 89 917 5548", in.Value())

	assert.False(t, in.SetCountry("XX"))
	assert.Equal(t, "RO", in.Country().Code)
}

func TestInput_Valid(t *testing.T) {
	in := NewInput()
	assert.False(t, in.Valid())

	in.Type("+359 89 91")
	assert.False(t, in.Valid())

	in.Type("+359 89 917 5548")
	assert.True(t, in.Valid())
}

func TestDigits(t *testing.T) {
	assert.Equal(t, "359899175548", Digits("+359 89-917(5548)"))
	assert.Equal(t, "", Digits("abc"))
}
