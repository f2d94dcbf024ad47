// Package prompt renders the interactive prompt.
package prompt

import (
	"fmt"
	"os"
	"os/user"
	"strings"
)

// DefaultSuffix terminates the prompt unless the config overrides it.
const DefaultSuffix = ">>> "

// PS1 renders "user@host:cwd" with the given suffix, collapsing the home
// directory prefix of cwd to "~". Unresolvable pieces degrade to "?"
// rather than failing; a prompt must always render.
func PS1(suffix string) string {
	username := "?"
	if u, err := user.Current(); err == nil {
		username = u.Username
	}

	host := "?"
	if h, err := os.Hostname(); err == nil {
		host = h
	}

	cwd := "?"
	if wd, err := os.Getwd(); err == nil {
		if home, err := os.UserHomeDir(); err == nil {
			wd = CollapseUser(wd, home)
		}
		cwd = wd
	}

	if suffix == "" {
		suffix = DefaultSuffix
	}
	return fmt.Sprintf("%s@%s:%s%s", username, host, cwd, suffix)
}

// CollapseUser replaces a leading home-directory prefix of path with "~".
// The prefix must end at a path boundary: "/homestead" does not collapse
// under home "/home".
func CollapseUser(path, home string) string {
	if home == "" || !strings.HasPrefix(path, home) {
		return path
	}
	rest := path[len(home):]
	if rest != "" && !strings.HasPrefix(rest, "/") && !strings.HasPrefix(rest, string(os.PathSeparator)) {
		return path
	}
	return "~" + rest
}
