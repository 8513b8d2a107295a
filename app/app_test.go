package app

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/focusflow/internal/config"
	"github.com/ayoisaiah/focusflow/internal/models"
	"github.com/ayoisaiah/focusflow/store"
)

type cliFixture struct {
	out  *bytes.Buffer
	args []string
	dir  string
}

func newCLI(t *testing.T, driver string) *cliFixture {
	t.Helper()

	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("FOCUSFLOW_AI_API_KEY", "")

	dir := t.TempDir()
	out := &bytes.Buffer{}

	oldStdout := config.Stdout
	config.Stdout = out

	t.Cleanup(func() {
		config.Stdout = oldStdout
	})

	db := filepath.Join(dir, "focusflow.db")
	if driver == config.DriverSQLite {
		db = filepath.Join(dir, "focusflow.sqlite")
	}

	return &cliFixture{
		out: out,
		dir: dir,
		args: []string{
			"focusflow",
			"--config", filepath.Join(dir, "config.yml"),
			"--session-file", filepath.Join(dir, "session.yml"),
			"--db", db,
			"--driver", driver,
			"--no-color",
		},
	}
}

func (f *cliFixture) run(t *testing.T, args ...string) string {
	t.Helper()

	f.out.Reset()

	err := Get().Run(append(append([]string{}, f.args...), args...))
	require.NoError(t, err, args)

	return f.out.String()
}

func TestTaskCommands(t *testing.T) {
	for _, driver := range []string{config.DriverBolt, config.DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			f := newCLI(t, driver)

			out := f.run(t, "task", "add", "--priority", "urgent", "Chapter", "10", "notes")
			assert.Contains(t, out, `Added task "Chapter 10 notes"`)

			f.run(t, "task", "add", "Chapter 2 notes")

			out = f.run(t, "task", "list")
			assert.Less(t, bytes.Index([]byte(out), []byte("Chapter 2 notes")),
				bytes.Index([]byte(out), []byte("Chapter 10 notes")))
			assert.Contains(t, out, "urgent")

			out = f.run(t, "stats", "--json")

			var s struct {
				TotalTasks     int    `json:"totalTasks"`
				CompletedTasks int    `json:"completedTasks"`
				Name           string `json:"name"`
			}

			require.NoError(t, json.Unmarshal([]byte(out), &s))
			assert.Equal(t, 2, s.TotalTasks)
			assert.Equal(t, 0, s.CompletedTasks)
			assert.Equal(t, "Jordan Smith", s.Name)
		})
	}
}

func TestCompleteTask(t *testing.T) {
	f := newCLI(t, config.DriverBolt)

	f.run(t, "task", "add", "Lab report")

	out := f.run(t, "stats", "--json")

	var before struct {
		TotalTasks int `json:"totalTasks"`
	}

	require.NoError(t, json.Unmarshal([]byte(out), &before))
	require.Equal(t, 1, before.TotalTasks)

	err := Get().Run(append(append([]string{}, f.args...), "task", "done", "missing-id"))
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestAddTaskRequiresTitle(t *testing.T) {
	f := newCLI(t, config.DriverBolt)

	err := Get().Run(append(append([]string{}, f.args...), "task", "add"))
	assert.ErrorIs(t, err, errMissingTitle)

	err = Get().Run(append(append([]string{}, f.args...), "task", "add", "--priority", "someday", "Essay"))
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestLoginLogout(t *testing.T) {
	f := newCLI(t, config.DriverBolt)

	out := f.run(t, "login", "--user", "sample-user-id")
	assert.Contains(t, out, "Logged in as Jordan Smith")

	_, err := os.Stat(filepath.Join(f.dir, "session.yml"))
	require.NoError(t, err)

	out = f.run(t, "logout")
	assert.Contains(t, out, "Logged out")

	_, err = os.Stat(filepath.Join(f.dir, "session.yml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	out = f.run(t, "logout")
	assert.Contains(t, out, "Not logged in")

	err = Get().Run(append(append([]string{}, f.args...), "login", "--user", "nobody"))
	assert.Error(t, err)
}

func TestBreakDownWithoutKey(t *testing.T) {
	f := newCLI(t, config.DriverBolt)

	out := f.run(t, "task", "breakdown", "Write", "history", "essay")
	assert.Contains(t, out, "Write history essay")
	assert.Contains(t, out, "1. ")
}

func TestFilterTasks(t *testing.T) {
	tasks := []models.Task{
		{Title: "Task 10"},
		{Title: "Task 9", Completed: true},
		{Title: "Task 2"},
	}

	got := filterTasks(tasks, false)
	require.Len(t, got, 2)
	assert.Equal(t, "Task 2", got[0].Title)
	assert.Equal(t, "Task 10", got[1].Title)

	assert.Len(t, filterTasks(tasks, true), 3)
}

func TestEditorCommand(t *testing.T) {
	cmd, err := editorCommand(`code --wait`, "/tmp/config.yml")
	require.NoError(t, err)
	assert.Equal(t, []string{"code", "--wait", "/tmp/config.yml"}, cmd.Args)

	_, err = editorCommand(`vim "unterminated`, "/tmp/config.yml")
	assert.ErrorIs(t, err, errEditor)

	_, err = editorCommand("", "/tmp/config.yml")
	assert.ErrorIs(t, err, errEditor)
}

func TestDashboardURL(t *testing.T) {
	assert.Equal(t, "http://localhost:5000", dashboardURL(":5000"))
	assert.Equal(t, "http://127.0.0.1:8080", dashboardURL("127.0.0.1:8080"))
}
