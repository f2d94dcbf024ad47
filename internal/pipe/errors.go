package pipe

import "errors"

var (
	// ErrInvalidInput reports an unsupported source type passed to
	// RedirectInput.
	ErrInvalidInput = errors.New("input source must be a path, pipeline, reader, or file descriptor")

	// ErrDecode reports pipeline output that is not valid UTF-8.
	ErrDecode = errors.New("output is not valid UTF-8")
)
