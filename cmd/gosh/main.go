package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/chzyer/readline"
	"github.com/urfave/cli/v2"

	"github.com/madewokherd/gosh/internal/config"
	"github.com/madewokherd/gosh/internal/history"
	"github.com/madewokherd/gosh/internal/prompt"
	"github.com/madewokherd/gosh/internal/shell"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "gosh",
		Usage:   "compose external processes into pipelines",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "load configuration from `PATH`",
			},
			&cli.StringFlag{
				Name:    "command",
				Aliases: []string{"c"},
				Usage:   "run `LINE` and exit with its status",
			},
			&cli.BoolFlag{
				Name:  "no-profile",
				Usage: "skip the startup profile",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintf(os.Stderr, "gosh: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	var cfg *config.Config
	var err error
	if path := c.String("config"); path != "" {
		cfg, err = config.LoadFrom(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger, err := history.NewLogger(cfg.History.Path, cfg.History.MaxSizeMB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gosh: history: %v\n", err)
		// Continue without history.
		logger = nil
	}

	sh := shell.New(cfg, logger, os.Stdin, os.Stdout, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if !c.Bool("no-profile") && cfg.Profile != "" {
		if _, err := os.Stat(cfg.Profile); err == nil {
			if err := sh.Source(ctx, cfg.Profile); err != nil {
				var exit *shell.ExitRequest
				if errors.As(err, &exit) {
					return cli.Exit("", exit.Code)
				}
				fmt.Fprintf(os.Stderr, "gosh: %v\n", err)
			}
		}
	}

	if line := c.String("command"); line != "" {
		code, _ := sh.Eval(ctx, line)
		return cli.Exit("", code)
	}

	return repl(ctx, sh, cfg)
}

func repl(ctx context.Context, sh *shell.Shell, cfg *config.Config) error {
	if !stdinIsTerminal() {
		return replPlain(ctx, sh)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt.PS1(cfg.Prompt.Suffix),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return replPlain(ctx, sh)
	}
	defer rl.Close()

	for {
		// The prompt tracks the working directory, so re-render it
		// every iteration.
		rl.SetPrompt(prompt.PS1(cfg.Prompt.Suffix))

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil {
			return nil // EOF or closed terminal
		}

		code, evalErr := sh.Eval(ctx, line)
		var exit *shell.ExitRequest
		if errors.As(evalErr, &exit) {
			return cli.Exit("", code)
		}
	}
}

// replPlain reads lines without line editing, for piped stdin.
func replPlain(ctx context.Context, sh *shell.Shell) error {
	scanner := bufio.NewScanner(os.Stdin)
	lastCode := 0
	for scanner.Scan() {
		code, err := sh.Eval(ctx, scanner.Text())
		var exit *shell.ExitRequest
		if errors.As(err, &exit) {
			return cli.Exit("", code)
		}
		lastCode = code
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		return fmt.Errorf("read input: %w", err)
	}
	if lastCode != 0 {
		return cli.Exit("", lastCode)
	}
	return nil
}

func stdinIsTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
