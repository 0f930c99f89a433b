// Package tools implements the command handler capabilities: system
// control, application launching, file search and explicit memory
// commands. Every handler returns a HandlerResult; failures carry a
// user-readable reason, never a raw exec error.
package tools

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/sandevgo/commandecho/internal/core"
	"github.com/sandevgo/commandecho/pkg/log"
)

// runnerFunc executes an external command and returns its combined
// output. Swappable so tests never touch the real system.
type runnerFunc func(ctx context.Context, name string, args ...string) (string, error)

func execRunner(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	return string(out), err
}

type SystemControl struct {
	goos string
	run  runnerFunc
}

func NewSystemControl() *SystemControl {
	return &SystemControl{
		goos: runtime.GOOS,
		run:  execRunner,
	}
}

func (s *SystemControl) SetVolume(ctx context.Context, slots core.Slots) core.HandlerResult {
	level, err := strconv.Atoi(slots["level"])
	if err != nil {
		return core.Failure("the volume level is not a number")
	}
	level = clamp(level, 0, 100)

	switch s.goos {
	case "linux":
		if _, err := s.run(ctx, "amixer", "set", "Master", fmt.Sprintf("%d%%", level)); err != nil {
			return core.Failure("the volume mixer is not available")
		}
	case "darwin":
		script := fmt.Sprintf("set volume output volume %d", level)
		if _, err := s.run(ctx, "osascript", "-e", script); err != nil {
			return core.Failure("the volume could not be changed")
		}
	default:
		return core.Failure("volume control is not supported on this system")
	}

	return core.Success(fmt.Sprintf("Volume set to %d%%.", level))
}

func (s *SystemControl) ShiftVolume(ctx context.Context, slots core.Slots) core.HandlerResult {
	arg := "10%+"
	word := "up"
	if slots["direction"] == "down" {
		arg = "10%-"
		word = "down"
	}

	switch s.goos {
	case "linux":
		if _, err := s.run(ctx, "amixer", "set", "Master", arg); err != nil {
			return core.Failure("the volume mixer is not available")
		}
	default:
		return core.Failure("volume control is not supported on this system")
	}

	return core.Success(fmt.Sprintf("Volume turned %s.", word))
}

func (s *SystemControl) SetBrightness(ctx context.Context, slots core.Slots) core.HandlerResult {
	level, err := strconv.Atoi(slots["level"])
	if err != nil {
		return core.Failure("the brightness level is not a number")
	}
	level = clamp(level, 0, 100)

	switch s.goos {
	case "linux":
		if _, err := s.run(ctx, "brightnessctl", "set", fmt.Sprintf("%d%%", level)); err != nil {
			return core.Failure("brightness control is not available")
		}
	default:
		return core.Failure("brightness control is not supported on this system")
	}

	return core.Success(fmt.Sprintf("Brightness set to %d%%.", level))
}

func (s *SystemControl) SystemInfo(ctx context.Context, slots core.Slots) core.HandlerResult {
	switch slots["topic"] {
	case "time":
		return core.Success(time.Now().Format("The current time is 15:04."))
	case "date":
		return core.Success(time.Now().Format("Today's date is Monday, January 2, 2006."))
	case "battery":
		return s.batteryInfo()
	case "storage":
		return s.storageInfo(ctx)
	default:
		return s.statusReport(ctx)
	}
}

func (s *SystemControl) batteryInfo() core.HandlerResult {
	capacity, err := os.ReadFile("/sys/class/power_supply/BAT0/capacity")
	if err != nil {
		return core.Failure("no battery information is available")
	}

	msg := fmt.Sprintf("Battery is at %s%%", strings.TrimSpace(string(capacity)))
	if status, err := os.ReadFile("/sys/class/power_supply/BAT0/status"); err == nil {
		msg += fmt.Sprintf(" (%s)", strings.ToLower(strings.TrimSpace(string(status))))
	}
	return core.Success(msg + ".")
}

func (s *SystemControl) storageInfo(ctx context.Context) core.HandlerResult {
	out, err := s.run(ctx, "df", "-h", "/")
	if err != nil {
		return core.Failure("storage information is not available")
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) < 2 {
		return core.Failure("storage information is not available")
	}

	fields := strings.Fields(lines[1])
	if len(fields) < 5 {
		return core.Failure("storage information is not available")
	}
	return core.Success(fmt.Sprintf("Root disk: %s total, %s free, %s used.", fields[1], fields[3], fields[4]))
}

func (s *SystemControl) statusReport(ctx context.Context) core.HandlerResult {
	parts := []string{fmt.Sprintf("Running on %s/%s with %d CPUs", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())}

	if out, err := s.run(ctx, "uptime", "-p"); err == nil {
		parts = append(parts, strings.TrimSpace(out))
	} else {
		log.FromCtx(ctx).Debug().Err(err).Msg("uptime not available")
	}

	return core.Success(strings.Join(parts, ", ") + ".")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
