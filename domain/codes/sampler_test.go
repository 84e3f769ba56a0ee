package codes

import (
	"math/rand/v2"
	"strings"
	"testing"

	"eantienda/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isAlphabet(code string) bool {
	for _, r := range code {
		if !strings.ContainsRune(Alphabet, r) {
			return false
		}
	}
	return true
}

func TestSampleShape(t *testing.T) {
	existing := map[string]struct{}{"AAAA1111": {}, "B2B2B2B2": {}}
	sampler := NewSampler(DefaultLength, DefaultMaxAttempts)

	batch, err := sampler.Sample(existing, 200, "")
	require.NoError(t, err)
	require.Len(t, batch, 200)

	seen := make(map[string]bool)
	for _, code := range batch {
		assert.Len(t, code, DefaultLength)
		assert.True(t, isAlphabet(code), "code %s outside alphabet", code)
		assert.True(t, strings.ContainsAny(code, Letters), "code %s has no letter", code)
		assert.True(t, strings.ContainsAny(code, Digits), "code %s has no digit", code)
		assert.False(t, seen[code], "duplicate code %s", code)
		_, clash := existing[code]
		assert.False(t, clash, "code %s already in history", code)
		seen[code] = true
	}
}

func TestSampleWithPrefix(t *testing.T) {
	sampler := NewSampler(DefaultLength, DefaultMaxAttempts)

	batch, err := sampler.Sample(map[string]struct{}{}, 5, "vip")
	require.NoError(t, err)
	require.Len(t, batch, 5)

	seen := make(map[string]bool)
	for _, code := range batch {
		assert.True(t, strings.HasPrefix(code, "VIP"), "code %s", code)
		assert.Len(t, code, 8)
		assert.True(t, isAlphabet(code))
		assert.False(t, seen[code])
		seen[code] = true
	}
}

func TestSampleFourCharacterPrefix(t *testing.T) {
	sampler := NewSampler(DefaultLength, DefaultMaxAttempts)

	batch, err := sampler.Sample(nil, 20, "AB12")
	require.NoError(t, err)
	for _, code := range batch {
		assert.Equal(t, "AB12", code[:4])
	}
}

func TestSampleExhaustedWhenSpaceIsFull(t *testing.T) {
	existing := make(map[string]struct{}, len(Alphabet)*len(Alphabet))
	for _, a := range Alphabet {
		for _, b := range Alphabet {
			existing[string(a)+string(b)] = struct{}{}
		}
	}
	sampler := NewSampler(2, 500)

	batch, err := sampler.Sample(existing, 1, "")
	assert.Nil(t, batch)
	assert.True(t, errors.HasCode(err, errors.CodeGenerationExhausted))

	batch, err = sampler.Sample(existing, 1, "Z")
	assert.Nil(t, batch)
	assert.True(t, errors.HasCode(err, errors.CodeGenerationExhausted))
}

func TestSampleAllOrNothing(t *testing.T) {
	// A one character suffix leaves 36 possible codes for the prefix.
	sampler := NewSampler(4, DefaultMaxAttempts)

	batch, err := sampler.Sample(nil, 37, "ABC")
	assert.Nil(t, batch)
	assert.True(t, errors.HasCode(err, errors.CodeGenerationExhausted))
}

func TestSampleRejectsInvalidRequests(t *testing.T) {
	sampler := NewSampler(DefaultLength, DefaultMaxAttempts)

	_, err := sampler.Sample(nil, 0, "")
	assert.True(t, errors.HasCode(err, errors.CodeValidationError))

	short := NewSampler(3, DefaultMaxAttempts)
	_, err = short.Sample(nil, 1, "ABCD")
	assert.True(t, errors.HasCode(err, errors.CodeValidationError))

	single := NewSampler(1, DefaultMaxAttempts)
	_, err = single.Sample(nil, 1, "")
	assert.True(t, errors.HasCode(err, errors.CodeValidationError))
}

func TestSampleSeededSourceIsReproducible(t *testing.T) {
	a := NewSamplerWithRand(8, 100, rand.New(rand.NewPCG(7, 11)))
	b := NewSamplerWithRand(8, 100, rand.New(rand.NewPCG(7, 11)))

	first, err := a.Sample(nil, 10, "")
	require.NoError(t, err)
	second, err := b.Sample(nil, 10, "")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestNormalizePrefix(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
		wantErr  bool
	}{
		{"vip", "VIP", false},
		{" ab1 ", "AB1", false},
		{"A1B2", "A1B2", false},
		{"", "", true},
		{"TOOLONG", "", true},
		{"A-1", "", true},
		{"ÑA", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			prefix, err := NormalizePrefix(tt.raw)
			if tt.wantErr {
				assert.True(t, errors.HasCode(err, errors.CodeValidationError))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, prefix)
		})
	}
}
