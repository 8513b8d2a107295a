package config

import "github.com/ayoisaiah/focusflow/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing default config failed",
	}

	errInvalidCLIDuration = &apperr.Error{
		Message: "invalid %s length: %d minutes",
	}

	errInvalidSince = &apperr.Error{
		Message: "unable to understand the date: %q",
	}

	errBreakTooLong = &apperr.Error{
		Message: "break duration (%v) must be less than focus duration (%v)",
	}

	errInvalidSoundFormat = &apperr.Error{
		Message: "invalid sound file format: %s (must be mp3, ogg, flac, or wav)",
	}

	errInvalidColor = &apperr.Error{
		Message: "%s color must be a valid hex color code (e.g. #FF0000), got %s",
	}

	errEmptyMsg = &apperr.Error{
		Message: "%s message cannot be empty",
	}

	errNoLengths = &apperr.Error{
		Message: "%s lengths cannot be empty",
	}

	errInvalidLength = &apperr.Error{
		Message: "%s length must be between %d and %d minutes, got %d",
	}

	errUnsupportedDuration = &apperr.Error{
		Message: "%s duration %v is not one of the supported lengths %v",
	}

	errInvalidMaxSessions = &apperr.Error{
		Message: "max sessions must be between %d and %d",
	}

	errInvalidDismissAfter = &apperr.Error{
		Message: "notification dismiss interval must be positive, got %v",
	}

	errUnknownDriver = &apperr.Error{
		Message: "unknown storage driver: %q (must be bolt or sqlite)",
	}

	errEmptyServerAddr = &apperr.Error{
		Message: "server address cannot be empty",
	}

	errEmptyDefaultUser = &apperr.Error{
		Message: "server default user cannot be empty",
	}
)
