package proc

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"
)

func TestWaitExitCode(t *testing.T) {
	p, err := Start([]string{"sh", "-c", "exit 3"}, nil, Stdio{Out: &bytes.Buffer{}, Err: &bytes.Buffer{}})
	if err != nil {
		t.Fatal(err)
	}
	code, err := p.Wait(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if code != 3 {
		t.Errorf("expected exit code 3, got %d", code)
	}
}

func TestEnvOverlay(t *testing.T) {
	var out bytes.Buffer
	p, err := Start(
		[]string{"sh", "-c", `printf %s "$GOSH_TEST_VAR"`},
		map[string]string{"GOSH_TEST_VAR": "overlay"},
		Stdio{Out: &out, Err: &bytes.Buffer{}},
	)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Wait(context.Background()); err != nil {
		t.Fatal(err)
	}
	if out.String() != "overlay" {
		t.Errorf("expected overlay value, got %q", out.String())
	}

	// The overlay must not leak into the ambient environment.
	if v := os.Getenv("GOSH_TEST_VAR"); v != "" {
		t.Errorf("ambient environment mutated: GOSH_TEST_VAR=%q", v)
	}
}

func TestEnvOverlayPreservesAmbient(t *testing.T) {
	t.Setenv("GOSH_AMBIENT", "kept")

	var out bytes.Buffer
	p, err := Start(
		[]string{"sh", "-c", `printf %s "$GOSH_AMBIENT"`},
		map[string]string{"GOSH_OTHER": "x"},
		Stdio{Out: &out, Err: &bytes.Buffer{}},
	)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Wait(context.Background()); err != nil {
		t.Fatal(err)
	}
	if out.String() != "kept" {
		t.Errorf("overlay replaced the ambient environment: got %q", out.String())
	}
}

func TestPoll(t *testing.T) {
	p, err := Start([]string{"sleep", "0.2"}, nil, Stdio{Out: &bytes.Buffer{}, Err: &bytes.Buffer{}})
	if err != nil {
		t.Fatal(err)
	}

	if _, exited := p.Poll(); exited {
		t.Error("Poll reported exit while the process should still be running")
	}

	if _, err := p.Wait(context.Background()); err != nil {
		t.Fatal(err)
	}

	code, exited := p.Poll()
	if !exited {
		t.Fatal("Poll did not report exit after Wait")
	}
	if code != 0 {
		t.Errorf("expected exit code 0, got %d", code)
	}
}

func TestWaitTimeout(t *testing.T) {
	p, err := Start([]string{"sleep", "1"}, nil, Stdio{Out: &bytes.Buffer{}, Err: &bytes.Buffer{}})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = p.Wait(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}

	// A timed-out wait does not terminate the process, and a fresh wait
	// still resolves it.
	if _, exited := p.Poll(); exited {
		t.Error("process exited early after wait timeout")
	}
	code, err := p.Wait(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if code != 0 {
		t.Errorf("expected exit code 0, got %d", code)
	}
}

func TestWaitExpiredContextResolvesExitedProcess(t *testing.T) {
	p, err := Start([]string{"sh", "-c", "exit 0"}, nil, Stdio{Out: &bytes.Buffer{}, Err: &bytes.Buffer{}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Wait(context.Background()); err != nil {
		t.Fatal(err)
	}

	// Zero remaining budget degrades to a poll, not an error.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	code, err := p.Wait(ctx)
	if err != nil {
		t.Fatalf("expired context on exited process: %v", err)
	}
	if code != 0 {
		t.Errorf("expected exit code 0, got %d", code)
	}
}

func TestCheck(t *testing.T) {
	p, err := Start([]string{"sh", "-c", "exit 7"}, nil, Stdio{Out: &bytes.Buffer{}, Err: &bytes.Buffer{}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Wait(context.Background()); err != nil {
		t.Fatal(err)
	}

	err = p.Check()
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ExitError, got %v", err)
	}
	if exitErr.Code != 7 {
		t.Errorf("expected code 7, got %d", exitErr.Code)
	}
	if !strings.Contains(exitErr.Error(), "exit status 7") {
		t.Errorf("unexpected error message: %q", exitErr.Error())
	}
}

func TestCheckZeroExit(t *testing.T) {
	p, err := Start([]string{"sh", "-c", "exit 0"}, nil, Stdio{Out: &bytes.Buffer{}, Err: &bytes.Buffer{}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Wait(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := p.Check(); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestStartErrors(t *testing.T) {
	if _, err := Start(nil, nil, Stdio{}); err == nil {
		t.Error("expected error for empty argv")
	}
	if _, err := Start([]string{"/nonexistent/gosh-test-binary"}, nil, Stdio{}); err == nil {
		t.Error("expected error for missing executable")
	}
}
