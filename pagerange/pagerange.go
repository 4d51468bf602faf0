// Package pagerange parses and normalizes 1-based page range expressions.
//
// A range expression is one or more tokens separated by newlines, commas,
// or semicolons. Each token is either a single page number ("7") or a pair
// ("2-9"). Parse preserves pair order as given; Normalize orients and clamps
// ranges once the page count of a concrete document is known, and Validate
// is the strict pre-execution gate.
package pagerange

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Range is a 1-based, inclusive span of pages.
type Range struct {
	From int
	To   int
}

func (r Range) String() string { return fmt.Sprintf("%d-%d", r.From, r.To) }

// Pages returns the number of pages the range covers. Meaningful once the
// range is normalized or validated.
func (r Range) Pages() int { return r.To - r.From + 1 }

// ErrNoRanges is returned by Parse when the input contains no tokens after
// blanks are filtered.
var ErrNoRanges = errors.New("no page ranges provided")

// SyntaxError reports a token that does not match the range grammar.
type SyntaxError struct {
	Token string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid page range %q", e.Token)
}

var (
	tokenRE     = regexp.MustCompile(`^\d+(\s*-\s*\d+)?$`)
	separatorRE = regexp.MustCompile(`[\n,;]`)
)

// Parse turns a free-form range expression into the ranges it denotes, in
// input order. A pair token keeps the order given ("9-2" parses as {9,2});
// a bare token denotes a single page. Any token outside the grammar fails
// the whole batch with *SyntaxError, so the caller never applies a partial
// range list. Bounds are not checked here; see Normalize and Validate.
func Parse(text string) ([]Range, error) {
	var ranges []Range
	for _, tok := range separatorRE.Split(text, -1) {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		r, err := parseToken(tok)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}
	if len(ranges) == 0 {
		return nil, ErrNoRanges
	}
	return ranges, nil
}

func parseToken(tok string) (Range, error) {
	if !tokenRE.MatchString(tok) {
		return Range{}, &SyntaxError{Token: tok}
	}
	first, rest, isPair := strings.Cut(tok, "-")
	from, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil {
		return Range{}, &SyntaxError{Token: tok}
	}
	if !isPair {
		return Range{From: from, To: from}, nil
	}
	to, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil {
		return Range{}, &SyntaxError{Token: tok}
	}
	return Range{From: from, To: to}, nil
}

// Single builds the range for one structured pair, preserving the order
// given, exactly as Parse would for the token "a-b".
func Single(a, b int) Range { return Range{From: a, To: b} }

// Normalize clamps both bounds of r into [1, pageCount] independently, then
// swaps them if they arrive inverted. It never fails: out-of-bounds input is
// corrected, not rejected. pageCount is assumed to be at least 1.
func Normalize(r Range, pageCount int) Range {
	r.From = clamp(r.From, 1, pageCount)
	r.To = clamp(r.To, 1, pageCount)
	if r.From > r.To {
		r.From, r.To = r.To, r.From
	}
	return r
}

// NormalizeAll applies Normalize to every range, preserving order.
func NormalizeAll(ranges []Range, pageCount int) []Range {
	out := make([]Range, len(ranges))
	for i, r := range ranges {
		out[i] = Normalize(r, pageCount)
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// OutOfBoundsError reports a range that failed validation against a
// document's page count.
type OutOfBoundsError struct {
	Range     Range
	PageCount int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("page range %s is out of bounds for a document with %d pages", e.Range, e.PageCount)
}

// Validate checks every range against pageCount. Unlike Normalize this is a
// hard gate: the first range with From < 1, To > pageCount, or From > To
// fails the whole batch with *OutOfBoundsError. Ranges normalized against a
// stale or absent page count must pass through here before execution.
func Validate(ranges []Range, pageCount int) error {
	for _, r := range ranges {
		if r.From < 1 || r.To > pageCount || r.From > r.To {
			return &OutOfBoundsError{Range: r, PageCount: pageCount}
		}
	}
	return nil
}
