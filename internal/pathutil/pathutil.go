// Package pathutil manages application file paths and locations
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"
)

const envName = "FOCUSFLOW_ENV"

// Paths holds all application path configurations.
type Paths struct {
	appDir          string
	configFileName  string
	boltFileName    string
	sqliteFileName  string
	sessionFileName string
	logFileName     string

	// Computed absolute paths
	configFilePath  string
	boltFilePath    string
	sqliteFilePath  string
	sessionFilePath string
	logFilePath     string
}

var (
	paths   *Paths
	once    sync.Once
	initErr error
)

// Initialize must be called once at program startup.
func Initialize() error {
	once.Do(func() {
		paths = &Paths{
			appDir:          "focusflow",
			configFileName:  "config.yml",
			boltFileName:    "focusflow.db",
			sqliteFileName:  "focusflow.sqlite",
			sessionFileName: "session.yml",
			logFileName:     "focusflow.log",
		}

		paths.applyEnvironmentOverrides(os.Getenv(envName))
		initErr = paths.computePaths()
	})

	return initErr
}

// Must panics if paths haven't been initialized.
func Must() *Paths {
	if paths == nil {
		panic("pathutil.Initialize() must be called before accessing paths")
	}

	return paths
}

func ConfigFilePath() string {
	return Must().configFilePath
}

func BoltFilePath() string {
	return Must().boltFilePath
}

func SQLiteFilePath() string {
	return Must().sqliteFilePath
}

// SessionFilePath is where the signed-in user is remembered between runs.
func SessionFilePath() string {
	return Must().sessionFilePath
}

func LogFilePath() string {
	return Must().logFilePath
}

func (p *Paths) applyEnvironmentOverrides(env string) {
	env = strings.TrimSpace(env)
	if env == "" {
		return
	}

	for _, name := range []*string{
		&p.configFileName,
		&p.boltFileName,
		&p.sqliteFileName,
		&p.sessionFileName,
		&p.logFileName,
	} {
		*name = withSuffix(*name, env)
	}
}

// withSuffix turns "config.yml" into "config_<suffix>.yml".
func withSuffix(fileName, suffix string) string {
	return StripExtension(fileName) + "_" + suffix + filepath.Ext(fileName)
}

func (p *Paths) computePaths() error {
	var err error

	p.configFilePath, err = xdg.ConfigFile(filepath.Join(p.appDir, p.configFileName))
	if err != nil {
		return fmt.Errorf("resolving config path: %w", err)
	}

	dataDir, err := xdg.DataFile(p.appDir)
	if err != nil {
		return fmt.Errorf("resolving data dir: %w", err)
	}

	p.boltFilePath = filepath.Join(dataDir, p.boltFileName)
	p.sqliteFilePath = filepath.Join(dataDir, p.sqliteFileName)
	p.sessionFilePath = filepath.Join(dataDir, p.sessionFileName)
	p.logFilePath = filepath.Join(dataDir, "log", p.logFileName)

	return nil
}

// StripExtension returns the input file name without its extension.
func StripExtension(fileName string) string {
	return fileName[:len(fileName)-len(filepath.Ext(fileName))]
}
