// Package codes issues short alphanumeric ticket codes that never repeat a
// code already present in the history.
package codes

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode"

	"eantienda/internal/errors"
)

const (
	Letters  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Digits   = "0123456789"
	Alphabet = Letters + Digits

	DefaultLength      = 8
	DefaultMaxAttempts = 10000
	MaxPrefixLength    = 4
)

// Sampler draws candidate codes and keeps those absent from the exclusion set.
// It is not safe for concurrent use.
type Sampler struct {
	Length      int
	MaxAttempts int

	rng *rand.Rand
}

// NewSampler creates a sampler backed by a randomly seeded PCG source.
func NewSampler(length, maxAttempts int) *Sampler {
	return NewSamplerWithRand(length, maxAttempts, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
}

// NewSamplerWithRand creates a sampler over a caller supplied source.
func NewSamplerWithRand(length, maxAttempts int, rng *rand.Rand) *Sampler {
	if length <= 0 {
		length = DefaultLength
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Sampler{Length: length, MaxAttempts: maxAttempts, rng: rng}
}

// Sample returns count new codes that are pairwise distinct and absent from
// existing. The attempt budget covers the whole call; when it runs out nothing
// is returned. An empty prefix selects the mixed letter+digit strategy.
func (s *Sampler) Sample(existing map[string]struct{}, count int, prefix string) ([]string, error) {
	if count <= 0 {
		return nil, errors.ValidationError("the number of codes must be positive")
	}
	prefix = strings.ToUpper(prefix)
	if len(prefix) > s.Length {
		return nil, errors.ValidationError(fmt.Sprintf("prefix %q is longer than the code length %d", prefix, s.Length))
	}
	if prefix == "" && s.Length < 2 {
		return nil, errors.ValidationError("random codes need at least 2 characters")
	}

	accepted := make(map[string]struct{}, count)
	batch := make([]string, 0, count)
	for attempts := 0; len(batch) < count; attempts++ {
		if attempts >= s.MaxAttempts {
			return nil, errors.GenerationExhausted(fmt.Sprintf(
				"could not generate %d unique codes after %d attempts; use a longer code or request fewer codes",
				count, s.MaxAttempts))
		}

		var candidate string
		if prefix != "" {
			candidate = s.withPrefix(prefix)
		} else {
			candidate = s.mixed()
		}

		if _, used := existing[candidate]; used {
			continue
		}
		if _, dup := accepted[candidate]; dup {
			continue
		}
		accepted[candidate] = struct{}{}
		batch = append(batch, candidate)
	}
	return batch, nil
}

// withPrefix keeps the prefix and fills the rest uniformly from Alphabet.
func (s *Sampler) withPrefix(prefix string) string {
	var b strings.Builder
	b.Grow(s.Length)
	b.WriteString(prefix)
	for i := len(prefix); i < s.Length; i++ {
		b.WriteByte(Alphabet[s.rng.IntN(len(Alphabet))])
	}
	return b.String()
}

// mixed forces one letter and one digit, fills the rest uniformly and shuffles.
func (s *Sampler) mixed() string {
	buf := make([]byte, s.Length)
	buf[0] = Letters[s.rng.IntN(len(Letters))]
	buf[1] = Digits[s.rng.IntN(len(Digits))]
	for i := 2; i < s.Length; i++ {
		buf[i] = Alphabet[s.rng.IntN(len(Alphabet))]
	}
	s.rng.Shuffle(len(buf), func(i, j int) { buf[i], buf[j] = buf[j], buf[i] })
	return string(buf)
}

// NormalizePrefix uppercases a manual prefix and checks it is at most four
// letters or digits.
func NormalizePrefix(raw string) (string, error) {
	prefix := strings.ToUpper(strings.TrimSpace(raw))
	if prefix == "" {
		return "", errors.ValidationError("a prefix is required when forcing the code start")
	}
	if len(prefix) > MaxPrefixLength {
		return "", errors.ValidationError(fmt.Sprintf("the prefix may have at most %d characters", MaxPrefixLength))
	}
	for _, r := range prefix {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return "", errors.ValidationError("the prefix may only contain letters and numbers")
		}
	}
	return prefix, nil
}
