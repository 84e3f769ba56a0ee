package app

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"eantienda/domain/codes"
	"eantienda/domain/layout"
	"eantienda/internal"
	"eantienda/internal/errors"
	"eantienda/ports"
)

// CodeBook is the per-session state of the unique code tool: the imported
// history, where it came from and the last generated batch.
type CodeBook struct {
	History   *codes.History
	Source    string
	LastBatch []string
}

// NewCodeBook returns a book with no history loaded.
func NewCodeBook() *CodeBook {
	return &CodeBook{}
}

// Loaded reports whether a history file has been imported.
func (b *CodeBook) Loaded() bool {
	return b.History != nil
}

// CodesOptions configures a CodesService
type CodesOptions struct {
	MaxPerBatch int
	Card        layout.Card
}

// CodesService runs the unique code commands against a session's code book
type CodesService struct {
	codec   ports.TableCodec
	labels  *LabelService
	opts    CodesOptions
	now     Clock
	logger  *internal.Logger
	mu      sync.Mutex // guards sampler, which is shared by every session
	sampler *codes.Sampler
}

// NewCodesService creates a codes service
func NewCodesService(codec ports.TableCodec, labels *LabelService, sampler *codes.Sampler, opts CodesOptions) *CodesService {
	if opts.MaxPerBatch <= 0 {
		opts.MaxPerBatch = 1000
	}
	return &CodesService{
		codec:   codec,
		labels:  labels,
		opts:    opts,
		now:     time.Now,
		logger:  internal.DefaultLogger.WithComponent("CodesService"),
		sampler: sampler,
	}
}

// WithClock replaces the clock used for export file names
func (s *CodesService) WithClock(now Clock) *CodesService {
	s.now = now
	return s
}

// MaxPerBatch returns the largest batch Generate accepts
func (s *CodesService) MaxPerBatch() int {
	return s.opts.MaxPerBatch
}

// ImportHistory loads previously issued codes, replacing any loaded history
// and forgetting the last batch.
func (s *CodesService) ImportHistory(book *CodeBook, src io.Reader, filename string) (int, error) {
	imported, err := s.codec.ReadHistory(src, filename)
	if err != nil {
		return 0, err
	}
	book.History = codes.NewHistory(imported)
	book.Source = filename
	book.LastBatch = nil
	s.logger.Info("Loaded %d issued codes from %s", book.History.Len(), filename)
	return book.History.Len(), nil
}

// Generate issues count new codes, appends them to the history and keeps them
// as the last batch. A non-empty prefix forces the start of every code.
func (s *CodesService) Generate(book *CodeBook, count int, prefix string) ([]string, error) {
	if !book.Loaded() {
		return nil, errors.ValidationError("upload the code history before generating codes")
	}
	if count <= 0 {
		return nil, errors.ValidationError("the number of codes must be positive")
	}
	if count > s.opts.MaxPerBatch {
		return nil, errors.ValidationError(fmt.Sprintf("at most %d codes can be generated at once", s.opts.MaxPerBatch))
	}
	if strings.TrimSpace(prefix) != "" {
		normalized, err := codes.NormalizePrefix(prefix)
		if err != nil {
			return nil, err
		}
		prefix = normalized
	} else {
		prefix = ""
	}

	s.mu.Lock()
	batch, err := s.sampler.Sample(book.History.Set(), count, prefix)
	s.mu.Unlock()
	if err != nil {
		s.logger.Warn("Generation of %d codes failed: %v", count, err)
		return nil, err
	}

	if err := book.History.Append(batch); err != nil {
		return nil, errors.Wrap(err, "failed to record generated codes")
	}
	book.LastBatch = batch
	s.logger.Info("Generated %d codes (history now %d)", len(batch), book.History.Len())

	out := make([]string, len(batch))
	copy(out, batch)
	return out, nil
}

// ExportHistory writes the full history, named after the imported file plus
// an "actualizado" timestamp.
func (s *CodesService) ExportHistory(book *CodeBook) (*File, error) {
	if !book.Loaded() {
		return nil, errors.ValidationError("there is no code history to export")
	}
	name := updatedName(book.Source, DefaultHistoryName, s.now())

	var buf bytes.Buffer
	if err := s.codec.WriteHistory(&buf, name, book.History.Codes()); err != nil {
		return nil, errors.Wrap(err, "failed to export code history")
	}
	return &File{Name: name, ContentType: contentTypeFor(name), Data: buf.Bytes()}, nil
}

// RenderLastBatch prints the codes of the last batch, one per card.
func (s *CodesService) RenderLastBatch(book *CodeBook) (*File, error) {
	if len(book.LastBatch) == 0 {
		return nil, errors.ValidationError("generate codes before printing them")
	}
	data, err := s.labels.RenderCodeCards(book.LastBatch, s.opts.Card)
	if err != nil {
		return nil, err
	}
	return &File{Name: CodeCardsPDFName, ContentType: ContentTypePDF, Data: data}, nil
}
