package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"realestate-agent/internal/config"
)

// CommandGenerator runs a local text-generation process, writing the prompt
// to its stdin and taking its stdout as the answer.
type CommandGenerator struct {
	name    string
	command string
	args    []string
	timeout time.Duration
}

// NewCommandGenerator creates a generator around an arbitrary command line
func NewCommandGenerator(name, command string, args []string, timeout time.Duration) *CommandGenerator {
	return &CommandGenerator{
		name:    name,
		command: command,
		args:    args,
		timeout: timeout,
	}
}

// NewOllamaGenerator runs `ollama run <model>`
func NewOllamaGenerator(cfg config.OllamaConfig) *CommandGenerator {
	return NewCommandGenerator("ollama", cfg.Command, []string{"run", cfg.Model}, cfg.Timeout)
}

// Name implements Generator
func (g *CommandGenerator) Name() string {
	return g.name
}

// Generate implements Generator
func (g *CommandGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, g.command, g.args...)
	cmd.Stdin = strings.NewReader(prompt)
	cmd.WaitDelay = 2 * time.Second

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", NewTransientError(fmt.Errorf("%s did not finish: %w", g.name, ctx.Err()))
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", NewTransientError(fmt.Errorf("%s failed with status %d: %s",
				g.name, exitErr.ExitCode(), truncate(strings.TrimSpace(stderr.String()), 200)))
		}
		// binary missing or not executable
		return "", NewFatalError(fmt.Errorf("%s could not start: %w", g.name, err))
	}

	out := strings.TrimSpace(stdout.String())
	if out == "" {
		return "", NewTransientError(fmt.Errorf("%s produced no output", g.name))
	}
	return out, nil
}
