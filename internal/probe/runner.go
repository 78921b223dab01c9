// Package probe runs external commands to discover facts about the environment.
package probe

import (
	"context"
	"fmt"
	"os/exec"
	"time"
)

// DefaultTimeout bounds a single command run by DefaultCommandRunner.
const DefaultTimeout = 500 * time.Millisecond

// CommandRunner executes a command and returns its standard output.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// DefaultCommandRunner implements CommandRunner using exec.
type DefaultCommandRunner struct {
	Timeout time.Duration
}

// Run executes name with args, resolving name through PATH.
func (c *DefaultCommandRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	path, err := exec.LookPath(name)
	if err != nil {
		return nil, fmt.Errorf("looking up command %s: %w", name, err)
	}
	cmd := exec.CommandContext(ctx, path, args...) //nolint:gosec // Command name comes from configuration
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("running command %s: %w", name, err)
	}
	return output, nil
}
