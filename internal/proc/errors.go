package proc

import (
	"fmt"
	"strings"
)

// ExitError reports a process that exited with a nonzero status. Argv
// identifies the offending stage; Output carries the stage's captured
// stdout when the caller captured it (see pipe.Output).
type ExitError struct {
	Argv   []string
	Code   int
	Output []byte
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s: exit status %d", strings.Join(e.Argv, " "), e.Code)
}
