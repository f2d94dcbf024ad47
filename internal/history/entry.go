package history

import "time"

// Entry represents one executed pipeline.
type Entry struct {
	ID       string    `json:"id"`  // random identifier for the run
	Seq      uint64    `json:"seq"` // monotonic per log file
	Time     time.Time `json:"ts"`
	Command  string    `json:"command"`         // the pipeline as entered
	ExitCode int       `json:"exit_code"`       // combined exit code, 0 = success
	Error    string    `json:"error,omitempty"` // error message if the run failed before exiting
	Duration float64   `json:"duration_ms"`
	Cwd      string    `json:"cwd"`
}
