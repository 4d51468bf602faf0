// Package security holds the resource limits engines apply to untrusted
// inputs before doing heavy work.
package security

import "fmt"

// Limits defines processing boundaries for source documents. They guard
// against resource exhaustion from oversized or degenerate inputs. A zero
// value disables the corresponding check.
type Limits struct {
	// Maximum size of a single source document in bytes. Default: 512 MB.
	MaxSourceBytes int64

	// Maximum page count of a single source document. Default: 5,000.
	MaxPages int

	// Maximum number of sources in one merge. Default: 200.
	MaxSources int

	// Maximum pixel count of one rendered frame. Default: 256 Mpx.
	MaxFramePixels int64
}

// DefaultLimits returns a Limits struct with safe default values.
func DefaultLimits() Limits {
	return Limits{
		MaxSourceBytes: 512 * 1024 * 1024, // 512 MB
		MaxPages:       5000,
		MaxSources:     200,
		MaxFramePixels: 256 * 1024 * 1024, // 256 Mpx
	}
}

// LimitError reports input that exceeds a configured limit.
type LimitError struct {
	What string
	Max  int64
	Got  int64
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%s %d exceeds the limit of %d", e.What, e.Got, e.Max)
}

func (l Limits) CheckSourceBytes(n int64) error {
	if l.MaxSourceBytes > 0 && n > l.MaxSourceBytes {
		return &LimitError{What: "source size", Max: l.MaxSourceBytes, Got: n}
	}
	return nil
}

func (l Limits) CheckPages(n int) error {
	if l.MaxPages > 0 && n > l.MaxPages {
		return &LimitError{What: "page count", Max: int64(l.MaxPages), Got: int64(n)}
	}
	return nil
}

func (l Limits) CheckSources(n int) error {
	if l.MaxSources > 0 && n > l.MaxSources {
		return &LimitError{What: "source count", Max: int64(l.MaxSources), Got: int64(n)}
	}
	return nil
}

func (l Limits) CheckFramePixels(n int64) error {
	if l.MaxFramePixels > 0 && n > l.MaxFramePixels {
		return &LimitError{What: "frame pixel count", Max: l.MaxFramePixels, Got: n}
	}
	return nil
}
