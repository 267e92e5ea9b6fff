package audio

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	shellwords "github.com/mattn/go-shellwords"
	"go.uber.org/zap"
)

// ExecPlayer plays an audio file through an external command such as
// "aplay" or "afplay". The file path is appended as the final argument.
type ExecPlayer struct {
	cmd    []string
	logger *zap.Logger
}

// NewExecPlayer parses a shell-style playback command.
func NewExecPlayer(command string, logger *zap.Logger) (*ExecPlayer, error) {
	parser := shellwords.NewParser()
	args, err := parser.Parse(command)
	if err != nil {
		return nil, fmt.Errorf("parse playback command: %w", err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("playback command is empty")
	}
	return &ExecPlayer{cmd: args, logger: logger}, nil
}

// Play runs the playback command and blocks until it exits.
func (p *ExecPlayer) Play(ctx context.Context, path string) error {
	args := append(append([]string{}, p.cmd[1:]...), path)
	command := exec.CommandContext(ctx, p.cmd[0], args...)
	var stderr bytes.Buffer
	command.Stderr = &stderr

	if err := command.Run(); err != nil {
		return fmt.Errorf("playback command failed: %w: %s", err, stderr.String())
	}
	p.logger.Debug("Playback finished", zap.String("path", path))
	return nil
}

// NopPlayer satisfies the playback capability when no output device is
// configured, e.g. on headless deployments.
type NopPlayer struct{}

func (NopPlayer) Play(ctx context.Context, path string) error { return nil }
