// Package errors provides sentinel errors and custom error types for the autofix application.
// Use errors.Is() and errors.As() to check for specific error types.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common conditions
var (
	// ErrNotARepository indicates that the working directory is not inside a git repository
	ErrNotARepository = errors.New("not a git repository")

	// ErrDetachedHead indicates that HEAD is not on a branch
	ErrDetachedHead = errors.New("detached HEAD")

	// ErrDirtyWorktree indicates that the working tree already has local changes
	ErrDirtyWorktree = errors.New("working tree has local changes")

	// ErrNoToolsConfigured indicates that the config declares no tools to run
	ErrNoToolsConfigured = errors.New("no tools configured")

	// ErrToolFailed indicates that an external tool exited non-zero
	ErrToolFailed = errors.New("tool failed")

	// ErrToolNotRegistered indicates a tool name that is not in the configured registry
	ErrToolNotRegistered = errors.New("tool not registered")
)

// ToolCommandError represents a failed external tool invocation
type ToolCommandError struct {
	Tool    string
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *ToolCommandError) Error() string {
	msg := fmt.Sprintf("tool %s failed: %s", e.Tool, e.Command)
	if len(e.Args) > 0 {
		msg += " " + strings.Join(e.Args, " ")
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *ToolCommandError) Unwrap() error {
	return e.Err
}

// Is returns true if the target error is ErrToolFailed
func (e *ToolCommandError) Is(target error) bool {
	return target == ErrToolFailed
}

// NewToolCommandError creates a new ToolCommandError
func NewToolCommandError(tool, command string, args []string, stdout, stderr string, err error) *ToolCommandError {
	return &ToolCommandError{
		Tool:    tool,
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}

// GitCommandError represents an error from a git command execution
type GitCommandError struct {
	Command string
	Args    []string
	Stdout  string
	Stderr  string
	Err     error
}

func (e *GitCommandError) Error() string {
	msg := fmt.Sprintf("git command failed: %s", e.Command)
	if len(e.Args) > 0 {
		msg += fmt.Sprintf(" %v", e.Args)
	}
	if e.Stderr != "" {
		msg += fmt.Sprintf("\nstderr: %s", e.Stderr)
	}
	if e.Stdout != "" {
		msg += fmt.Sprintf("\nstdout: %s", e.Stdout)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n%v", e.Err)
	}
	return msg
}

func (e *GitCommandError) Unwrap() error {
	return e.Err
}

// NewGitCommandError creates a new GitCommandError
func NewGitCommandError(command string, args []string, stdout, stderr string, err error) *GitCommandError {
	return &GitCommandError{
		Command: command,
		Args:    args,
		Stdout:  stdout,
		Stderr:  stderr,
		Err:     err,
	}
}
