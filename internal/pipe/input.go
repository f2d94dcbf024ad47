package pipe

import (
	"fmt"
	"io"
	"os"

	"github.com/madewokherd/gosh/internal/proc"
)

// fileInput supplies a pipeline's stdin from a file path. The file is not
// touched until spawn time.
type fileInput struct {
	path  string
	inner Pipeline
}

// InputFile returns a pipeline whose stdin is read from the named file,
// like `p < path`.
func InputFile(path string, p Pipeline) Pipeline {
	return &fileInput{path: path, inner: p}
}

// Spawn opens the file for reading and starts the inner pipeline with it
// as stdin. The parent's descriptor is closed on every path out of here,
// success or failure; the spawned child holds its own copy.
func (f *fileInput) Spawn(stdio Stdio) (proc.Handle, error) {
	in, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("redirect stdin: %w", err)
	}
	defer in.Close()

	stdio.In = in
	return f.inner.Spawn(stdio)
}

func (f *fileInput) WithEnv(env map[string]string) Pipeline {
	return &fileInput{path: f.path, inner: f.inner.WithEnv(env)}
}

// streamInput supplies a pipeline's stdin from an existing reader. It
// opens nothing and closes nothing; the stream stays owned by the caller.
type streamInput struct {
	src   io.Reader
	inner Pipeline
}

// InputStream returns a pipeline whose stdin is the given reader. A nil
// reader means the spawned process inherits the caller's stdin.
func InputStream(r io.Reader, p Pipeline) Pipeline {
	return &streamInput{src: r, inner: p}
}

func (s *streamInput) Spawn(stdio Stdio) (proc.Handle, error) {
	stdio.In = s.src
	return s.inner.Spawn(stdio)
}

func (s *streamInput) WithEnv(env map[string]string) Pipeline {
	return &streamInput{src: s.src, inner: s.inner.WithEnv(env)}
}

// RedirectInput wires p's stdin from source, dispatching on its type:
// a string is treated as a file path, a Pipeline becomes the upstream
// stage of a pipe, a reader (or nil, or a raw file descriptor) is passed
// through as the stream. Any other type is an error.
func RedirectInput(p Pipeline, source any) (Pipeline, error) {
	switch src := source.(type) {
	case string:
		return InputFile(src, p), nil
	case Pipeline:
		return Pipe(src, p), nil
	case nil:
		return InputStream(nil, p), nil
	case int:
		return InputStream(os.NewFile(uintptr(src), "stdin"), p), nil
	case io.Reader:
		return InputStream(src, p), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidInput, source)
	}
}
