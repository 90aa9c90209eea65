// Package speech provides a terminal speech platform that reads questions
// aloud through a local text-to-speech command.
package speech

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/lshigami/hirewise/internal/interview"
	"github.com/rs/zerolog/log"
)

// CommandSpeech synthesizes speech by running an external command such as
// "espeak" or "say" with the text as its last argument. It has no speech
// recognition.
type CommandSpeech struct {
	name string
	args []string

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewCommandSpeech parses command ("espeak -s 160") into a program and its
// leading arguments. An empty command, or one not found on PATH, yields
// interview.NoopSpeech.
func NewCommandSpeech(command string) interview.SpeechPlatform {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return interview.NoopSpeech{}
	}
	path, err := exec.LookPath(fields[0])
	if err != nil {
		log.Warn().Err(err).Str("command", fields[0]).Msg("Text-to-speech command not found, questions will not be read aloud")
		return interview.NoopSpeech{}
	}
	return &CommandSpeech{name: path, args: fields[1:]}
}

func (s *CommandSpeech) StartRecognition(func(string), func(error)) error {
	return interview.ErrSpeechUnsupported
}

func (s *CommandSpeech) StopRecognition() error { return nil }

// Synthesize starts the command and returns once it is running. onEnd runs
// after the command exits, whether it finished or was cancelled.
func (s *CommandSpeech) Synthesize(text string, onEnd func()) error {
	ctx, cancel := context.WithCancel(context.Background())
	cmd := exec.CommandContext(ctx, s.name, append(append([]string(nil), s.args...), text)...)
	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("failed to start %s: %w", s.name, err)
	}

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	s.mu.Unlock()

	go func() {
		if err := cmd.Wait(); err != nil && ctx.Err() == nil {
			log.Debug().Err(err).Msg("Text-to-speech command failed")
		}
		cancel()
		if onEnd != nil {
			onEnd()
		}
	}()
	return nil
}

// CancelSynthesis kills the running command, if any.
func (s *CommandSpeech) CancelSynthesis() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
