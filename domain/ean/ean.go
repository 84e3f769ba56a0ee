// Package ean builds and checks the 13-digit product identifiers printed on
// store labels: an 8-digit deployment prefix, a 4-digit sequence number and a
// trailing mod-10 check digit.
package ean

import (
	"fmt"
	"strconv"
	"strings"

	"eantienda/internal/errors"
)

const (
	// Length is the number of digits in a complete identifier.
	Length = 13
	// PrefixLength is the number of digits fixed per deployment.
	PrefixLength = 8
	// SequenceDigits is the width of the zero-padded sequence block.
	SequenceDigits = 4
	// MaxSequence is the last sequence number a prefix can issue.
	MaxSequence = 9999

	// DefaultPrefix is 84 (Spain) followed by the organisation block.
	DefaultPrefix = "84370000"
)

// CheckDigit computes the check digit for a 12-digit base.
// The rightmost base digit carries weight 3, the next weight 1, and so on.
func CheckDigit(base string) (int, error) {
	if len(base) != Length-1 || !allDigits(base) {
		return 0, errors.ValidationError(fmt.Sprintf("base must have %d numeric digits, got %q", Length-1, base))
	}

	sum := 0
	for i := len(base) - 1; i >= 0; i-- {
		d := int(base[i] - '0')
		if (len(base)-1-i)%2 == 0 {
			sum += d * 3
		} else {
			sum += d
		}
	}
	return (10 - sum%10) % 10, nil
}

// Complete appends the check digit to a 12-digit base.
func Complete(base string) (string, error) {
	digit, err := CheckDigit(base)
	if err != nil {
		return "", err
	}
	return base + strconv.Itoa(digit), nil
}

// IsWellFormed reports whether code has 13 ASCII digits. The check digit is not verified.
func IsWellFormed(code string) bool {
	return len(code) == Length && allDigits(code)
}

// Validate verifies the shape of a manually entered identifier and its check digit.
func Validate(code string) error {
	if !IsWellFormed(code) {
		return errors.ValidationError(fmt.Sprintf("EAN must contain %d numeric digits", Length))
	}
	digit, err := CheckDigit(code[:Length-1])
	if err != nil {
		return err
	}
	if int(code[Length-1]-'0') != digit {
		return errors.ValidationError(fmt.Sprintf("EAN %s has check digit %c, expected %d", code, code[Length-1], digit))
	}
	return nil
}

// ValidatePrefix checks the deployment prefix.
func ValidatePrefix(prefix string) error {
	if len(prefix) != PrefixLength || !allDigits(prefix) {
		return errors.ValidationError(fmt.Sprintf("prefix must have %d numeric digits, got %q", PrefixLength, prefix))
	}
	return nil
}

// Sequence extracts the sequence number of code when it belongs to prefix.
// Codes that are malformed or carry another prefix report false.
func Sequence(code, prefix string) (int, bool) {
	if !IsWellFormed(code) || !strings.HasPrefix(code, prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(code[PrefixLength : PrefixLength+SequenceDigits])
	if err != nil {
		return 0, false
	}
	return n, true
}

// Next returns the identifier following the highest sequence number issued
// under prefix. Foreign or malformed codes in existing are ignored so legacy
// rows never block generation.
func Next(existing []string, prefix string) (string, error) {
	if err := ValidatePrefix(prefix); err != nil {
		return "", err
	}

	highest := 0
	for _, code := range existing {
		if seq, ok := Sequence(code, prefix); ok && seq > highest {
			highest = seq
		}
	}

	next := highest + 1
	if next > MaxSequence {
		return "", errors.RangeExhausted(fmt.Sprintf("identifier range for prefix %s is exhausted (last sequence %04d)", prefix, highest))
	}
	return Complete(fmt.Sprintf("%s%0*d", prefix, SequenceDigits, next))
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
