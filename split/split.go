// Package split derives per-range page subsets from one source document.
package split

import (
	"context"
	"fmt"

	"github.com/wudi/pagekit/document"
	"github.com/wudi/pagekit/observability"
	"github.com/wudi/pagekit/pagerange"
	"github.com/wudi/pagekit/security"
)

// Result is one output document together with the range that produced it.
type Result struct {
	From int
	To   int
	Data []byte
}

// OutputName derives the conventional filename for the result from the
// source's base name: "<base>_pages_<from>-<to>.pdf".
func (r Result) OutputName(base string) string {
	return fmt.Sprintf("%s_pages_%d-%d.pdf", base, r.From, r.To)
}

// RangeError reports a failure assembling the output for one range.
type RangeError struct {
	Range pagerange.Range
	Err   error
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("failed to assemble pages %s: %v", e.Range, e.Err)
}

func (e *RangeError) Unwrap() error { return e.Err }

// Splitter produces one output document per page range.
type Splitter struct {
	codec  document.Codec
	logger observability.Logger
	limits security.Limits
}

type Option func(*Splitter)

func WithLogger(l observability.Logger) Option { return func(s *Splitter) { s.logger = l } }

func WithLimits(l security.Limits) Option { return func(s *Splitter) { s.limits = l } }

func New(codec document.Codec, opts ...Option) *Splitter {
	s := &Splitter{
		codec:  codec,
		logger: observability.NopLogger{},
		limits: security.DefaultLimits(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Split builds one new document per range, each holding exactly the source
// pages From..To in ascending order. All ranges are validated against the
// live page count before any assembly; a violation fails the whole call
// with *pagerange.OutOfBoundsError and no outputs.
//
// Outputs are independent: if assembling range i fails, the results already
// built for earlier ranges are returned alongside a *RangeError for range i.
// Cancellation is the exception and abandons all progress.
func (s *Splitter) Split(ctx context.Context, src []byte, ranges []pagerange.Range) ([]Result, error) {
	if len(ranges) == 0 {
		return nil, pagerange.ErrNoRanges
	}
	if err := s.limits.CheckSourceBytes(int64(len(src))); err != nil {
		return nil, err
	}
	doc, err := s.codec.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("failed to load source: %w", err)
	}
	if err := s.limits.CheckPages(doc.PageCount()); err != nil {
		return nil, err
	}
	if err := pagerange.Validate(ranges, doc.PageCount()); err != nil {
		return nil, err
	}

	s.logger.Debug("splitting document",
		observability.Int("pages", doc.PageCount()),
		observability.Int("ranges", len(ranges)))

	results := make([]Result, 0, len(ranges))
	for _, r := range ranges {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := doc.CopyPages(ctx, pageSequence(r))
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return results, &RangeError{Range: r, Err: err}
		}
		results = append(results, Result{From: r.From, To: r.To, Data: data})
	}

	s.logger.Info("split document",
		observability.Int("ranges", len(ranges)),
		observability.Int64("in_bytes", int64(len(src))))
	return results, nil
}

func pageSequence(r pagerange.Range) []int {
	pages := make([]int, 0, r.Pages())
	for p := r.From; p <= r.To; p++ {
		pages = append(pages, p)
	}
	return pages
}
