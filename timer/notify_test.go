package timer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ayoisaiah/focusflow/internal/models"
)

type desktopCall struct {
	title, body string
}

type notifyFixture struct {
	promptErr  error
	desktopErr error
	n          *DesktopNotifier
	toasts     *Toasts
	player     *fakePlayer
	desktop    []desktopCall
	prompts    int
	answer     bool
}

type fakePlayer struct {
	err   error
	plays int
}

func (p *fakePlayer) Play(context.Context) error {
	p.plays++
	return p.err
}

func newNotifyFixture(enabled, answer bool) *notifyFixture {
	clock := newTestClock()

	f := &notifyFixture{
		toasts: NewToasts(clock.Now),
		player: &fakePlayer{},
		answer: answer,
	}

	f.n = NewDesktopNotifier(f.toasts, NotifierOptions{
		Player:  f.player,
		Enabled: enabled,
		Desktop: func(title, body, _ string) error {
			f.desktop = append(f.desktop, desktopCall{title, body})
			return f.desktopErr
		},
		Prompt: func() (bool, error) {
			f.prompts++
			return f.answer, f.promptErr
		},
		DismissAfter: 5 * time.Second,
	})

	return f
}

func TestNotifyAlwaysShowsToast(t *testing.T) {
	f := newNotifyFixture(true, false)

	f.n.RequestPermission()
	f.n.Notify(context.Background(), models.KindFocus)

	toasts := f.toasts.Active()
	if assert.Len(t, toasts, 1) {
		assert.Equal(t, "Focus session complete!", toasts[0].Title)
		assert.Equal(t, "Time for a break!", toasts[0].Body)
		assert.Equal(t, ToastInfo, toasts[0].Level)
	}

	assert.Empty(t, f.desktop, "denied permission means toast only")
	assert.Equal(t, 1, f.player.plays)
}

func TestNotifyBreakText(t *testing.T) {
	f := newNotifyFixture(true, true)

	f.n.RequestPermission()
	f.n.Notify(context.Background(), models.KindBreak)

	assert.Equal(t, []desktopCall{
		{"Break complete!", "Ready for another focus session?"},
	}, f.desktop)
}

func TestPermissionAskedOnce(t *testing.T) {
	f := newNotifyFixture(true, true)

	assert.True(t, f.n.RequestPermission())

	f.answer = false

	assert.True(t, f.n.RequestPermission())
	assert.Equal(t, 1, f.prompts)

	f.n.Notify(context.Background(), models.KindFocus)
	f.n.Notify(context.Background(), models.KindFocus)

	assert.Len(t, f.desktop, 2)
}

func TestPermissionPromptFailureIsDenial(t *testing.T) {
	f := newNotifyFixture(true, true)
	f.promptErr = errors.New("no tty")

	assert.False(t, f.n.RequestPermission())

	f.promptErr = nil

	assert.False(t, f.n.RequestPermission(), "never re-prompted")
	assert.Equal(t, 1, f.prompts)
}

func TestDisabledNotificationsNeverPrompt(t *testing.T) {
	f := newNotifyFixture(false, true)

	assert.False(t, f.n.RequestPermission())
	assert.Equal(t, 0, f.prompts)

	f.n.Notify(context.Background(), models.KindFocus)

	assert.Empty(t, f.desktop)
	assert.Len(t, f.toasts.Active(), 1)
}

func TestNotifySwallowsFailures(t *testing.T) {
	f := newNotifyFixture(true, true)
	f.desktopErr = errors.New("dbus unavailable")
	f.player.err = errors.New("no audio device")

	f.n.RequestPermission()

	assert.NotPanics(t, func() {
		f.n.Notify(context.Background(), models.KindFocus)
	})

	assert.Len(t, f.desktop, 1)
	assert.Equal(t, 1, f.player.plays)
	assert.Len(t, f.toasts.Active(), 1)
}

func TestRunSessionCmd(t *testing.T) {
	assert.NoError(t, runSessionCmd(context.Background(), ""))

	err := runSessionCmd(context.Background(), `echo "unterminated`)
	assert.True(t, errors.Is(err, errSessionCmd))
}
