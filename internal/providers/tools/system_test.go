package tools

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/commandecho/internal/core"
)

type recordedCall struct {
	name string
	args []string
}

func newStubSystem(goos string, out string, err error) (*SystemControl, *[]recordedCall) {
	var calls []recordedCall
	s := &SystemControl{
		goos: goos,
		run: func(ctx context.Context, name string, args ...string) (string, error) {
			calls = append(calls, recordedCall{name: name, args: args})
			return out, err
		},
	}
	return s, &calls
}

func TestSetVolume(t *testing.T) {
	s, calls := newStubSystem("linux", "", nil)

	got := s.SetVolume(context.Background(), core.Slots{"level": "50"})

	assert.True(t, got.OK)
	assert.Equal(t, "Volume set to 50%.", got.Message)
	require.Len(t, *calls, 1)
	assert.Equal(t, "amixer", (*calls)[0].name)
	assert.Equal(t, []string{"set", "Master", "50%"}, (*calls)[0].args)
}

func TestSetVolume_ClampsOutOfRange(t *testing.T) {
	s, _ := newStubSystem("linux", "", nil)

	got := s.SetVolume(context.Background(), core.Slots{"level": "250"})

	assert.True(t, got.OK)
	assert.Equal(t, "Volume set to 100%.", got.Message)
}

func TestSetVolume_BadLevel(t *testing.T) {
	s, calls := newStubSystem("linux", "", nil)

	got := s.SetVolume(context.Background(), core.Slots{"level": "loud"})

	assert.False(t, got.OK)
	assert.Empty(t, *calls, "no command runs for an unparseable level")
}

func TestSetVolume_MixerUnavailable(t *testing.T) {
	s, _ := newStubSystem("linux", "", errors.New("exec: amixer: not found"))

	got := s.SetVolume(context.Background(), core.Slots{"level": "30"})

	assert.False(t, got.OK)
	assert.NotContains(t, got.Reason, "exec:", "raw exec errors never reach the user")
}

func TestShiftVolume(t *testing.T) {
	s, calls := newStubSystem("linux", "", nil)

	got := s.ShiftVolume(context.Background(), core.Slots{"direction": "down"})

	assert.True(t, got.OK)
	assert.Equal(t, "Volume turned down.", got.Message)
	require.Len(t, *calls, 1)
	assert.Equal(t, []string{"set", "Master", "10%-"}, (*calls)[0].args)
}

func TestSetBrightness_UnsupportedPlatform(t *testing.T) {
	s, calls := newStubSystem("windows", "", nil)

	got := s.SetBrightness(context.Background(), core.Slots{"level": "70"})

	assert.False(t, got.OK)
	assert.Empty(t, *calls)
}

func TestSystemInfo_Time(t *testing.T) {
	s, _ := newStubSystem("linux", "", nil)

	got := s.SystemInfo(context.Background(), core.Slots{"topic": "time"})

	assert.True(t, got.OK)
	assert.True(t, strings.HasPrefix(got.Message, "The current time is "))
}

func TestSystemInfo_Storage(t *testing.T) {
	df := "Filesystem  Size  Used Avail Use% Mounted on\n/dev/sda1   100G   40G   60G  40% /\n"
	s, calls := newStubSystem("linux", df, nil)

	got := s.SystemInfo(context.Background(), core.Slots{"topic": "storage"})

	assert.True(t, got.OK)
	assert.Equal(t, "Root disk: 100G total, 60G free, 40% used.", got.Message)
	require.Len(t, *calls, 1)
	assert.Equal(t, "df", (*calls)[0].name)
}

func TestSystemInfo_StorageUnavailable(t *testing.T) {
	s, _ := newStubSystem("linux", "", errors.New("no df"))

	got := s.SystemInfo(context.Background(), core.Slots{"topic": "storage"})

	assert.False(t, got.OK)
}
