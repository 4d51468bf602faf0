// Package merge concatenates ordered source documents into one. Two
// implementations share the Engine contract: Merger runs on a local codec,
// ServiceClient delegates to a remote merge service.
package merge

import (
	"context"
	"errors"
	"fmt"

	"github.com/wudi/pagekit/document"
	"github.com/wudi/pagekit/observability"
	"github.com/wudi/pagekit/security"
)

// ErrInsufficientInputs is returned when fewer than two sources are given.
// Merging one document is a no-op the caller should reject upstream.
var ErrInsufficientInputs = errors.New("merging requires at least two source documents")

// SourceError reports a source that could not be used, by its 0-based
// position in the input list.
type SourceError struct {
	Index int
	Err   error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source %d of the merge list is unusable: %v", e.Index+1, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// Engine is the merge contract: all pages of every source, existing order,
// sources in list order, all-or-nothing.
type Engine interface {
	Merge(ctx context.Context, sources [][]byte) ([]byte, error)
}

// Merger implements Engine with a local codec.
type Merger struct {
	codec  document.Codec
	logger observability.Logger
	limits security.Limits
}

type Option func(*Merger)

func WithLogger(l observability.Logger) Option { return func(m *Merger) { m.logger = l } }

func WithLimits(l security.Limits) Option { return func(m *Merger) { m.limits = l } }

func New(codec document.Codec, opts ...Option) *Merger {
	m := &Merger{
		codec:  codec,
		logger: observability.NopLogger{},
		limits: security.DefaultLimits(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Merge concatenates all pages of every source, in list order. The engine
// merges exactly the list it is given; de-duplicating sources by identity is
// the caller's responsibility. Every source is loaded up front, so an
// unreadable source fails the whole merge with a *SourceError naming its
// position instead of being silently skipped.
func (m *Merger) Merge(ctx context.Context, sources [][]byte) ([]byte, error) {
	if len(sources) < 2 {
		return nil, ErrInsufficientInputs
	}
	if err := m.limits.CheckSources(len(sources)); err != nil {
		return nil, err
	}

	total := 0
	for i, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := m.limits.CheckSourceBytes(int64(len(src))); err != nil {
			return nil, &SourceError{Index: i, Err: err}
		}
		doc, err := m.codec.Load(ctx, src)
		if err != nil {
			return nil, &SourceError{Index: i, Err: err}
		}
		total += doc.PageCount()
	}

	m.logger.Debug("merging documents",
		observability.Int("sources", len(sources)),
		observability.Int("pages", total))

	out, err := m.codec.Merge(ctx, sources)
	if err != nil {
		return nil, fmt.Errorf("failed to merge documents: %w", err)
	}

	m.logger.Info("merged documents",
		observability.Int("sources", len(sources)),
		observability.Int("pages", total),
		observability.Int64("out_bytes", int64(len(out))))
	return out, nil
}
