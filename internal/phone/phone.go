// Package phone implements the country-aware phone input used by the
// add-reservation and client-lookup screens. It only advises on validity;
// the reservation workflow enforces its own length check on submit.
package phone

import (
	"regexp"
	"strings"
)

type Country struct {
	Code        string
	Name        string
	CallingCode string
}

// Countries the input knows about. BG is the default.
var Countries = []Country{
	{Code: "BG", Name: "Bulgaria", CallingCode: "+359"},
	{Code: "GR", Name: "Greece", CallingCode: "+30"},
	{Code: "RO", Name: "Romania", CallingCode: "+40"},
	{Code: "RS", Name: "Serbia", CallingCode: "+381"},
	{Code: "TR", Name: "Turkey", CallingCode: "+90"},
}

const (
	maxDigits      = 15
	minValidDigits = 9
)

var (
	allowed  = regexp.MustCompile(`[^\d+\s\-()]`)
	nonDigit = regexp.MustCompile(`\D`)
)

// Input holds the field value and the selected country.
type Input struct {
	country Country
	value   string
}

func NewInput() *Input {
	return &Input{country: Countries[0]}
}

func (in *Input) Country() Country { return in.country }
func (in *Input) Value() string    { return in.value }

// SetCountry switches the selected country. When the current value has no
// leading "+" the new calling code is prefixed so the user keeps typing the
// local part.
func (in *Input) SetCountry(code string) bool {
	for _, c := range Countries {
		if c.Code == code {
			in.country = c
			if !strings.HasPrefix(in.value, "+") {
				in.value = c.CallingCode + " "
			}
			return true
		}
	}
	return false
}

// Type replaces the field value as if the user had edited it: characters
// outside digits, "+", space, hyphen and parentheses are stripped, and input
// exceeding the 15-digit cap is rejected, keeping the previous value.
func (in *Input) Type(raw string) {
	cleaned := allowed.ReplaceAllString(raw, "")
	if len(Digits(cleaned)) > maxDigits {
		return
	}
	in.value = cleaned
}

// Valid reports whether the value carries at least 9 digits.
func (in *Input) Valid() bool {
	return len(Digits(in.value)) >= minValidDigits
}

// Digits strips every non-digit character.
func Digits(s string) string {
	return nonDigit.ReplaceAllString(s, "")
}
