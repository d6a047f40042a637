package models

import "errors"

// Stage errors for the chart generation pipeline. Every failure of a single
// invocation wraps exactly one of these so callers can map it to a result
// signal with errors.Is.
var (
	// ErrDataUnavailable means the history store could not be reached or
	// returned an error before any rendering was attempted.
	ErrDataUnavailable = errors.New("history data unavailable")

	// ErrNoData means no requested entity produced a numeric sample in the
	// window. This is an expected no-op outcome, not a system fault; no
	// file is written.
	ErrNoData = errors.New("no numeric data in window")

	// ErrRenderFailure means the drawing backend raised an error. Any
	// partial artifact is discarded.
	ErrRenderFailure = errors.New("chart render failed")

	// ErrWriteFailure means the resolved output path could not be written.
	ErrWriteFailure = errors.New("chart write failed")
)

// Stage returns the short stage name for a pipeline error, or "internal"
// when the error does not wrap a known stage.
func Stage(err error) string {
	switch {
	case errors.Is(err, ErrDataUnavailable):
		return "data_unavailable"
	case errors.Is(err, ErrNoData):
		return "no_data"
	case errors.Is(err, ErrRenderFailure):
		return "render"
	case errors.Is(err, ErrWriteFailure):
		return "write"
	default:
		return "internal"
	}
}
