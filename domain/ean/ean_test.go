package ean

import (
	"fmt"
	"testing"

	"eantienda/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckDigitKnownValues(t *testing.T) {
	tests := []struct {
		base     string
		expected int
	}{
		{"400638133393", 1},
		{"590123412345", 7},
		{"843700000001", 3},
		{"843700000002", 0},
		{"000000000000", 0},
	}

	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			digit, err := CheckDigit(tt.base)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, digit)
		})
	}
}

func TestCheckDigitRejectsBadBase(t *testing.T) {
	for _, base := range []string{"", "84370000000", "8437000000011", "84370000000A"} {
		_, err := CheckDigit(base)
		assert.True(t, errors.HasCode(err, errors.CodeValidationError), "base %q", base)
	}
}

func TestCheckDigitRoundTrip(t *testing.T) {
	for seq := 1; seq <= MaxSequence; seq += 37 {
		base := fmt.Sprintf("%s%04d", DefaultPrefix, seq)
		code, err := Complete(base)
		require.NoError(t, err)

		digit, err := CheckDigit(code[:12])
		require.NoError(t, err)
		assert.Equal(t, int(code[12]-'0'), digit)
		assert.NoError(t, Validate(code))
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate("4006381333931"))
	assert.Error(t, Validate("4006381333932"), "altered check digit")
	assert.Error(t, Validate("400638133393"), "too short")
	assert.Error(t, Validate("40063813339A1"), "non digit")
}

func TestNextEmptyInventory(t *testing.T) {
	code, err := Next(nil, DefaultPrefix)
	require.NoError(t, err)
	assert.Equal(t, "8437000000013", code)
}

func TestNextFollowsHighestSequence(t *testing.T) {
	existing := []string{
		"8437000000013",
		"8437000000426", // sequence 42, check digit not verified for ordering
		"8437000000020",
	}

	code, err := Next(existing, DefaultPrefix)
	require.NoError(t, err)

	seq, ok := Sequence(code, DefaultPrefix)
	require.True(t, ok)
	assert.Equal(t, 43, seq)
	assert.NoError(t, Validate(code))
}

func TestNextIgnoresForeignAndMalformedCodes(t *testing.T) {
	existing := []string{
		"4006381333931",  // foreign prefix
		"84370000",       // too short
		"843700009999X",  // not numeric
		"84370000500000", // too long
		"",
		"8437000000020",
	}

	code, err := Next(existing, DefaultPrefix)
	require.NoError(t, err)
	assert.Equal(t, "843700000003", code[:12])
}

func TestNextScenarioAfterImport(t *testing.T) {
	code, err := Next([]string{"8437000000013"}, DefaultPrefix)
	require.NoError(t, err)
	assert.Equal(t, "8437000000020", code)
}

func TestNextRangeExhausted(t *testing.T) {
	existing := make([]string, 0, MaxSequence)
	for seq := 1; seq <= MaxSequence; seq++ {
		code, err := Complete(fmt.Sprintf("%s%04d", DefaultPrefix, seq))
		require.NoError(t, err)
		existing = append(existing, code)
	}

	_, err := Next(existing, DefaultPrefix)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeRangeExhausted))
}

func TestNextRejectsBadPrefix(t *testing.T) {
	_, err := Next(nil, "8437")
	assert.True(t, errors.HasCode(err, errors.CodeValidationError))
}
