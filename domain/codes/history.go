package codes

import (
	"fmt"
	"strings"

	"eantienda/internal/errors"
)

// History is the ordered record of every code issued so far.
type History struct {
	codes []string
	index map[string]struct{}
}

// NewHistory builds a history from imported codes. Values are trimmed, blanks
// are dropped and the first occurrence of a repeated code is kept.
func NewHistory(imported []string) *History {
	h := &History{index: make(map[string]struct{}, len(imported))}
	for _, raw := range imported {
		code := strings.TrimSpace(raw)
		if code == "" {
			continue
		}
		if _, seen := h.index[code]; seen {
			continue
		}
		h.index[code] = struct{}{}
		h.codes = append(h.codes, code)
	}
	return h
}

// Len returns the number of recorded codes.
func (h *History) Len() int {
	return len(h.codes)
}

// Contains reports whether code was already issued.
func (h *History) Contains(code string) bool {
	_, ok := h.index[code]
	return ok
}

// Set exposes the exclusion set used by the sampler. Callers must not modify it.
func (h *History) Set() map[string]struct{} {
	return h.index
}

// Codes returns a copy of the recorded codes in issue order.
func (h *History) Codes() []string {
	out := make([]string, len(h.codes))
	copy(out, h.codes)
	return out
}

// Append records a freshly generated batch. Nothing is recorded if any code
// is blank, repeated within the batch, or already present.
func (h *History) Append(batch []string) error {
	seen := make(map[string]struct{}, len(batch))
	for _, code := range batch {
		if code == "" {
			return errors.ValidationError("cannot record an empty code")
		}
		if _, dup := seen[code]; dup || h.Contains(code) {
			return errors.ValidationError(fmt.Sprintf("code %s was already issued", code))
		}
		seen[code] = struct{}{}
	}
	for _, code := range batch {
		h.index[code] = struct{}{}
		h.codes = append(h.codes, code)
	}
	return nil
}
