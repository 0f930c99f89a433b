package voice

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/sandevgo/commandecho/internal/config"
)

// CommandListener shells out to a configured speech-to-text command.
// The command is expected to capture one utterance and print the
// recognized text on stdout.
type CommandListener struct {
	command string
}

func NewCommandListener(cfg *config.VoiceConfig) (*CommandListener, error) {
	if strings.TrimSpace(cfg.STTCommand) == "" {
		return nil, fmt.Errorf("no speech-to-text command configured, set ECHO_STT_COMMAND")
	}
	return &CommandListener{command: cfg.STTCommand}, nil
}

func (c *CommandListener) Listen(ctx context.Context) (string, error) {
	out, err := exec.CommandContext(ctx, "sh", "-c", c.command).Output()
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("stt command: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// CommandSpeaker speaks through espeak on linux and say on darwin.
type CommandSpeaker struct {
	goos   string
	rate   int
	volume float32
}

func NewCommandSpeaker(cfg *config.VoiceConfig) *CommandSpeaker {
	return &CommandSpeaker{
		goos:   runtime.GOOS,
		rate:   cfg.SpeechRate,
		volume: cfg.SpeechVolume,
	}
}

func (c *CommandSpeaker) args(text string) (string, []string) {
	switch c.goos {
	case "darwin":
		return "say", []string{"-r", strconv.Itoa(c.rate), text}
	default:
		// espeak amplitude range is 0..200.
		amp := int(c.volume * 200)
		return "espeak", []string{"-s", strconv.Itoa(c.rate), "-a", strconv.Itoa(amp), text}
	}
}

func (c *CommandSpeaker) Speak(ctx context.Context, text string) error {
	name, args := c.args(text)
	if err := exec.CommandContext(ctx, name, args...).Run(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
