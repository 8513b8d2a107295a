package pathutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvironmentOverrides(t *testing.T) {
	p := &Paths{
		configFileName:  "config.yml",
		boltFileName:    "focusflow.db",
		sqliteFileName:  "focusflow.sqlite",
		sessionFileName: "session.yml",
		logFileName:     "focusflow.log",
	}

	p.applyEnvironmentOverrides(" test ")

	assert.Equal(t, "config_test.yml", p.configFileName)
	assert.Equal(t, "focusflow_test.db", p.boltFileName)
	assert.Equal(t, "focusflow_test.sqlite", p.sqliteFileName)
	assert.Equal(t, "session_test.yml", p.sessionFileName)
	assert.Equal(t, "focusflow_test.log", p.logFileName)
}

func TestEnvironmentOverridesEmpty(t *testing.T) {
	p := &Paths{configFileName: "config.yml"}

	p.applyEnvironmentOverrides("  ")

	assert.Equal(t, "config.yml", p.configFileName)
}

func TestStripExtension(t *testing.T) {
	assert.Equal(t, "bell", StripExtension("bell.ogg"))
	assert.Equal(t, "bell", StripExtension("bell"))
}
