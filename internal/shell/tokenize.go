package shell

import (
	"fmt"
	"strings"
)

// Token is one word of a command line. Op marks an unquoted | pipe
// operator; a quoted "|" stays an ordinary word.
type Token struct {
	Text string
	Op   bool
}

// Tokenize splits a command line on whitespace, honoring single and
// double quotes. An unquoted | is emitted as an operator token and
// separates pipeline stages. This is deliberately not a shell grammar:
// no globbing, no redirection operators, no escapes beyond quoting.
func Tokenize(line string) ([]Token, error) {
	var tokens []Token
	var cur strings.Builder
	inToken := false
	var quote rune

	flush := func() {
		if inToken {
			tokens = append(tokens, Token{Text: cur.String()})
			cur.Reset()
			inToken = false
		}
	}

	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			inToken = true
		case r == ' ' || r == '\t':
			flush()
		case r == '|':
			flush()
			tokens = append(tokens, Token{Text: "|", Op: true})
		default:
			cur.WriteRune(r)
			inToken = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote", quote)
	}
	flush()

	return tokens, nil
}

// splitStages splits tokens on the pipe operator into pipeline stages.
// Empty stages are rejected.
func splitStages(tokens []Token) ([][]string, error) {
	var stages [][]string
	var cur []string
	for _, tok := range tokens {
		if tok.Op {
			if len(cur) == 0 {
				return nil, fmt.Errorf("empty pipeline stage")
			}
			stages = append(stages, cur)
			cur = nil
			continue
		}
		cur = append(cur, tok.Text)
	}
	if len(cur) == 0 {
		return nil, fmt.Errorf("empty pipeline stage")
	}
	stages = append(stages, cur)
	return stages, nil
}
