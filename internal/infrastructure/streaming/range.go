package streaming

import (
	"strconv"
	"strings"

	apperrors "vodguard/pkg/errors"
)

// ByteWindow is the inclusive [Start, End] byte range being served out of a
// resource of Total bytes. Derived per request, never persisted.
type ByteWindow struct {
	Start int64
	End   int64
	Total int64
}

// Length returns the number of bytes in the window.
func (w ByteWindow) Length() int64 {
	return w.End - w.Start + 1
}

// ParseRange parses a single-range header of the form "bytes=<start>-<end>"
// where <end> is optional and defaults to total-1. An empty header returns a
// nil window (serve the whole resource). Malformed syntax is always
// InvalidInput, never a silent full-file fallback; a well-formed but
// out-of-bounds window is RangeNotSatisfiable.
func ParseRange(header string, total int64) (*ByteWindow, error) {
	if header == "" {
		return nil, nil
	}

	spec, ok := strings.CutPrefix(header, "bytes=")
	if !ok {
		return nil, apperrors.NewInvalidInputError("malformed range header")
	}

	startStr, endStr, ok := strings.Cut(spec, "-")
	if !ok || startStr == "" {
		return nil, apperrors.NewInvalidInputError("malformed range header")
	}

	start, err := strconv.ParseInt(startStr, 10, 64)
	if err != nil {
		return nil, apperrors.NewInvalidInputError("malformed range header")
	}

	end := total - 1
	if endStr != "" {
		end, err = strconv.ParseInt(endStr, 10, 64)
		if err != nil {
			return nil, apperrors.NewInvalidInputError("malformed range header")
		}
	}

	if start < 0 || end < 0 || start > end || start >= total || end >= total {
		return nil, apperrors.NewRangeNotSatisfiableError()
	}

	return &ByteWindow{Start: start, End: end, Total: total}, nil
}
