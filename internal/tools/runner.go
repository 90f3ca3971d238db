// Package tools executes the configured external lint/format tools.
// Tools run from a fixed allow-list loaded from config; ad-hoc command
// execution is not supported.
package tools

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"autofix.dev/autofix/internal/config"
	autofixerrors "autofix.dev/autofix/internal/errors"
)

// DefaultToolTimeout is the default timeout for a single tool invocation
const DefaultToolTimeout = 15 * time.Minute

// Mode selects which argument set a tool runs with.
type Mode int

const (
	// ModeFix runs the tool with its fix-mode arguments, rewriting files in place.
	ModeFix Mode = iota
	// ModeCheck runs the tool with its check-mode arguments, reporting without rewriting.
	ModeCheck
)

func (m Mode) String() string {
	if m == ModeCheck {
		return "check"
	}
	return "fix"
}

// Result describes a completed tool invocation.
type Result struct {
	Tool     string
	Mode     Mode
	Duration time.Duration
	Stdout   string
	Stderr   string
}

// Runner executes configured tools in declaration order.
type Runner struct {
	registry map[string]config.Tool
	order    []string
	baseDir  string
	timeout  time.Duration
}

// Option configures the runner.
type Option func(*Runner)

// WithTimeout overrides the per-tool timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.timeout = d
	}
}

// NewRunner creates a Runner for the given tools, executing them in baseDir.
func NewRunner(baseDir string, toolList []config.Tool, opts ...Option) *Runner {
	r := &Runner{
		registry: make(map[string]config.Tool, len(toolList)),
		baseDir:  baseDir,
		timeout:  DefaultToolTimeout,
	}
	for _, tool := range toolList {
		if _, exists := r.registry[tool.Name]; exists {
			continue
		}
		r.registry[tool.Name] = tool
		r.order = append(r.order, tool.Name)
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Names returns the registered tool names in declaration order.
func (r *Runner) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Run executes a single registered tool in the given mode.
func (r *Runner) Run(ctx context.Context, name string, mode Mode) (Result, error) {
	tool, ok := r.registry[name]
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", autofixerrors.ErrToolNotRegistered, name)
	}
	return r.execute(ctx, tool, mode)
}

// RunAll executes the named tools (or every registered tool when names is
// empty) in declaration order, stopping at the first failure.
func (r *Runner) RunAll(ctx context.Context, mode Mode, names []string) ([]Result, error) {
	selected := r.order
	if len(names) > 0 {
		selected = names
	}

	results := make([]Result, 0, len(selected))
	for _, name := range selected {
		result, err := r.Run(ctx, name, mode)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

// execute runs the tool process with captured output.
func (r *Runner) execute(ctx context.Context, tool config.Tool, mode Mode) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	args := append([]string{}, tool.Args...)
	switch mode {
	case ModeFix:
		args = append(args, tool.FixArgs...)
	case ModeCheck:
		args = append(args, tool.CheckArgs...)
	}

	cmd := exec.CommandContext(ctx, tool.Command, args...)
	cmd.Dir = r.baseDir

	if len(tool.Env) > 0 {
		env := os.Environ()
		for k, v := range tool.Env {
			env = append(env, k+"="+v)
		}
		cmd.Env = env
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			err = ctx.Err()
		}
		return Result{}, autofixerrors.NewToolCommandError(
			tool.Name, tool.Command, args,
			strings.TrimSpace(stdout.String()), strings.TrimSpace(stderr.String()), err)
	}

	return Result{
		Tool:     tool.Name,
		Mode:     mode,
		Duration: duration,
		Stdout:   strings.TrimSpace(stdout.String()),
		Stderr:   strings.TrimSpace(stderr.String()),
	}, nil
}

// Resolve reports whether each registered tool's command is findable on PATH.
func (r *Runner) Resolve() map[string]error {
	resolution := make(map[string]error, len(r.order))
	for _, name := range r.order {
		_, err := exec.LookPath(r.registry[name].Command)
		resolution[name] = err
	}
	return resolution
}
