package tools

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/sandevgo/commandecho/internal/core"
	"github.com/sandevgo/commandecho/pkg/log"
)

// appAliases maps spoken application names to the binary to launch.
// Unlisted names are tried verbatim.
var appAliases = map[string]string{
	"browser":    "firefox",
	"web":        "firefox",
	"chrome":     "google-chrome",
	"calculator": "gnome-calculator",
	"files":      "nautilus",
	"terminal":   "gnome-terminal",
	"editor":     "gedit",
	"music":      "rhythmbox",
	"mail":       "thunderbird",
	"email":      "thunderbird",
}

type starterFunc func(ctx context.Context, name string, args ...string) error

func execStarter(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	// Reap the child in the background so it does not linger as a
	// zombie while the assistant keeps running.
	go func() { _ = cmd.Wait() }()
	return nil
}

type AppLauncher struct {
	goos    string
	aliases map[string]string
	start   starterFunc
	run     runnerFunc
}

func NewAppLauncher() *AppLauncher {
	return &AppLauncher{
		goos:    runtime.GOOS,
		aliases: appAliases,
		start:   execStarter,
		run:     execRunner,
	}
}

func (a *AppLauncher) resolve(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if bin, ok := a.aliases[name]; ok {
		return bin
	}
	return strings.ReplaceAll(name, " ", "-")
}

func (a *AppLauncher) OpenApp(ctx context.Context, slots core.Slots) core.HandlerResult {
	name := slots["app"]
	if name == "" {
		return core.Failure("no application was named")
	}
	bin := a.resolve(name)

	var err error
	switch a.goos {
	case "darwin":
		err = a.start(ctx, "open", "-a", bin)
	default:
		err = a.start(ctx, bin)
	}
	if err != nil {
		log.FromCtx(ctx).Debug().Err(err).Str("app", bin).Msg("launch failed")
		return core.Failure(fmt.Sprintf("I couldn't find an application called %s", name))
	}

	return core.Success(fmt.Sprintf("Opening %s.", name))
}

func (a *AppLauncher) CloseApp(ctx context.Context, slots core.Slots) core.HandlerResult {
	name := slots["app"]
	if name == "" {
		return core.Failure("no application was named")
	}
	bin := a.resolve(name)

	if _, err := a.run(ctx, "pkill", "-f", bin); err != nil {
		return core.Failure(fmt.Sprintf("%s does not seem to be running", name))
	}
	return core.Success(fmt.Sprintf("Closed %s.", name))
}
