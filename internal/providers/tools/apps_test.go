package tools

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/commandecho/internal/core"
)

func newStubLauncher(goos string, startErr, runErr error) (*AppLauncher, *[]recordedCall) {
	var calls []recordedCall
	a := &AppLauncher{
		goos:    goos,
		aliases: appAliases,
		start: func(ctx context.Context, name string, args ...string) error {
			calls = append(calls, recordedCall{name: name, args: args})
			return startErr
		},
		run: func(ctx context.Context, name string, args ...string) (string, error) {
			calls = append(calls, recordedCall{name: name, args: args})
			return "", runErr
		},
	}
	return a, &calls
}

func TestOpenApp_ResolvesAlias(t *testing.T) {
	a, calls := newStubLauncher("linux", nil, nil)

	got := a.OpenApp(context.Background(), core.Slots{"app": "browser"})

	assert.True(t, got.OK)
	assert.Equal(t, "Opening browser.", got.Message)
	require.Len(t, *calls, 1)
	assert.Equal(t, "firefox", (*calls)[0].name)
}

func TestOpenApp_UnknownNameTriedVerbatim(t *testing.T) {
	a, calls := newStubLauncher("linux", nil, nil)

	got := a.OpenApp(context.Background(), core.Slots{"app": "Visual Code"})

	assert.True(t, got.OK)
	require.Len(t, *calls, 1)
	assert.Equal(t, "visual-code", (*calls)[0].name)
}

func TestOpenApp_DarwinUsesOpen(t *testing.T) {
	a, calls := newStubLauncher("darwin", nil, nil)

	a.OpenApp(context.Background(), core.Slots{"app": "calculator"})

	require.Len(t, *calls, 1)
	assert.Equal(t, "open", (*calls)[0].name)
	assert.Equal(t, []string{"-a", "gnome-calculator"}, (*calls)[0].args)
}

func TestOpenApp_LaunchFailure(t *testing.T) {
	a, _ := newStubLauncher("linux", errors.New("exec: not found"), nil)

	got := a.OpenApp(context.Background(), core.Slots{"app": "spaceship"})

	assert.False(t, got.OK)
	assert.Contains(t, got.Reason, "spaceship")
	assert.NotContains(t, got.Reason, "exec:")
}

func TestCloseApp(t *testing.T) {
	a, calls := newStubLauncher("linux", nil, nil)

	got := a.CloseApp(context.Background(), core.Slots{"app": "music"})

	assert.True(t, got.OK)
	require.Len(t, *calls, 1)
	assert.Equal(t, "pkill", (*calls)[0].name)
	assert.Equal(t, []string{"-f", "rhythmbox"}, (*calls)[0].args)
}

func TestCloseApp_NotRunning(t *testing.T) {
	a, _ := newStubLauncher("linux", nil, errors.New("exit status 1"))

	got := a.CloseApp(context.Background(), core.Slots{"app": "music"})

	assert.False(t, got.OK)
	assert.Contains(t, got.Reason, "music")
}

func TestOpenApp_EmptyName(t *testing.T) {
	a, calls := newStubLauncher("linux", nil, nil)

	got := a.OpenApp(context.Background(), core.Slots{})

	assert.False(t, got.OK)
	assert.Empty(t, *calls)
}
