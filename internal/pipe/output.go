package pipe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/madewokherd/gosh/internal/proc"
)

// Output spawns p with stdout captured, reads it to completion, waits for
// exit, and returns the raw bytes. A nonzero combined status is returned
// as a *proc.ExitError carrying the captured bytes, so output is not lost
// on failure. The context bounds the wait, not the process.
func Output(ctx context.Context, p Pipeline) ([]byte, error) {
	pr, pw, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("pipe: %w", err)
	}

	h, err := p.Spawn(Stdio{Out: pw})
	pw.Close()
	if err != nil {
		pr.Close()
		return nil, err
	}

	// Drain before waiting: a full pipe buffer would otherwise block the
	// child and deadlock the wait.
	data, readErr := io.ReadAll(pr)
	pr.Close()

	if _, err := h.Wait(ctx); err != nil {
		return data, err
	}
	if readErr != nil {
		return data, fmt.Errorf("read output: %w", readErr)
	}
	if err := h.Check(); err != nil {
		var exitErr *proc.ExitError
		if errors.As(err, &exitErr) {
			exitErr.Output = data
		}
		return data, err
	}
	return data, nil
}

// Text returns Output decoded as UTF-8.
func Text(ctx context.Context, p Pipeline) (string, error) {
	data, err := Output(ctx, p)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", ErrDecode
	}
	return string(data), nil
}

// Lines returns Text split on line boundaries. A trailing newline does
// not produce an empty final element.
func Lines(ctx context.Context, p Pipeline) ([]string, error) {
	text, err := Text(ctx, p)
	if err != nil {
		return nil, err
	}
	return splitLines(text), nil
}

// Line returns the first line of the pipeline's output.
func Line(ctx context.Context, p Pipeline) (string, error) {
	lines, err := Lines(ctx, p)
	if err != nil {
		return "", err
	}
	if len(lines) == 0 {
		return "", fmt.Errorf("no output")
	}
	return lines[0], nil
}

// Run spawns p with inherited streams, waits for it, and returns a
// *proc.ExitError if the combined status is nonzero.
func Run(ctx context.Context, p Pipeline) error {
	h, err := p.Spawn(Stdio{})
	if err != nil {
		return err
	}
	if _, err := h.Wait(ctx); err != nil {
		return err
	}
	return h.Check()
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSuffix(text, "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
