package timer

import "github.com/ayoisaiah/focusflow/internal/apperr"

var (
	ErrTimerRunning = &apperr.Error{
		Message: "pause or reset the timer before changing it",
	}

	ErrUnsupportedDuration = &apperr.Error{
		Message: "%v is not one of the available %s lengths",
	}

	// ErrRunNotStarted means a completion was reported for a run that was
	// never started. Nothing is recorded for it.
	ErrRunNotStarted = &apperr.Error{
		Message: "completed run has no start time",
	}

	errPersist = &apperr.Error{
		Message: "unable to record %s session",
	}

	errInvalidSoundFormat = &apperr.Error{
		Message: "sound file must be in mp3, ogg, flac, or wav format",
	}

	errSessionCmd = &apperr.Error{
		Message: "unable to parse settings.cmd option",
	}
)
