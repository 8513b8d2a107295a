package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/focusflow/assistant"
	"github.com/ayoisaiah/focusflow/internal/cache"
	"github.com/ayoisaiah/focusflow/internal/models"
	"github.com/ayoisaiah/focusflow/store"
)

const sampleUser = "sample-user-id"

var now = time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)

type fakeAssistant struct {
	grouped []assistant.TaskInput
}

func (f *fakeAssistant) Analyze(
	_ context.Context,
	title, _ string,
) assistant.Suggestion {
	return assistant.Suggestion{
		Category:          "academic",
		Priority:          models.PriorityUrgent,
		Reasoning:         "analyzed " + title,
		EstimatedDuration: 45,
	}
}

func (f *fakeAssistant) Groups(
	_ context.Context,
	tasks []assistant.TaskInput,
) []assistant.GroupSuggestion {
	f.grouped = tasks
	return nil
}

func (f *fakeAssistant) BreakDown(_ context.Context, title, _ string) []string {
	return []string{"Plan " + title, "Do " + title}
}

type testServer struct {
	db  *store.Client
	ai  *fakeAssistant
	srv *httptest.Server
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	clock := now

	db, err := store.NewClient(
		filepath.Join(t.TempDir(), "focusflow.db"),
		store.WithClock(func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		}),
		store.WithDefaultUser(sampleUser),
	)
	require.NoError(t, err)

	ai := &fakeAssistant{}

	s := New(db, ai, Options{
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		Cache:       cache.New(cache.DefaultSize, cache.DefaultTTL),
		Now:         func() time.Time { return now },
		DefaultUser: sampleUser,
	})

	srv := httptest.NewServer(s.Handler())

	t.Cleanup(func() {
		srv.Close()
		_ = db.Close()
	})

	return &testServer{db: db, ai: ai, srv: srv}
}

func (ts *testServer) do(
	t *testing.T,
	method, path, body string,
	header ...string,
) *http.Response {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, ts.srv.URL+path, r)
	require.NoError(t, err)

	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}

	resp, err := ts.srv.Client().Do(req)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = resp.Body.Close()
	})

	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var v T

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))

	return v
}

func message(t *testing.T, resp *http.Response) string {
	t.Helper()

	return decodeBody[errorBody](t, resp).Message
}

func TestTaskRoutes(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodPost, "/api/tasks", `{"title":"Read chapter 4"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	created := decodeBody[models.Task](t, resp)
	assert.Equal(t, "Read chapter 4", created.Title)
	assert.Equal(t, models.PriorityMedium, created.Priority)
	assert.Equal(t, sampleUser, created.UserID)

	resp = ts.do(t, http.MethodGet, "/api/tasks", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeBody[[]models.Task](t, resp), 1)

	resp = ts.do(t, http.MethodPatch, "/api/tasks/"+created.ID, `{"completed":true}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decodeBody[models.Task](t, resp).Completed)

	// the list was invalidated by the update
	resp = ts.do(t, http.MethodGet, "/api/tasks", "")
	tasks := decodeBody[[]models.Task](t, resp)
	require.Len(t, tasks, 1)
	assert.True(t, tasks[0].Completed)

	resp = ts.do(t, http.MethodDelete, "/api/tasks/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = ts.do(t, http.MethodGet, "/api/tasks", "")
	assert.Empty(t, decodeBody[[]models.Task](t, resp))
}

func TestErrorResponses(t *testing.T) {
	ts := newTestServer(t)

	cases := []struct {
		method string
		path   string
		body   string
		msg    string
		status int
	}{
		{
			method: http.MethodPost,
			path:   "/api/tasks",
			body:   `{"title":"  "}`,
			status: http.StatusBadRequest,
			msg:    "Invalid task data",
		},
		{
			method: http.MethodPost,
			path:   "/api/tasks",
			body:   `{"title":`,
			status: http.StatusBadRequest,
			msg:    "Invalid task data",
		},
		{
			method: http.MethodPost,
			path:   "/api/focus-sessions",
			body:   `{"durationMinutes":-5}`,
			status: http.StatusBadRequest,
			msg:    "Invalid session data",
		},
		{
			method: http.MethodPatch,
			path:   "/api/tasks/missing",
			body:   `{"completed":true}`,
			status: http.StatusNotFound,
			msg:    "Task not found",
		},
		{
			method: http.MethodDelete,
			path:   "/api/notes/missing",
			status: http.StatusNotFound,
			msg:    "Note not found",
		},
		{
			method: http.MethodPatch,
			path:   "/api/habits/missing",
			body:   `{"completed":true}`,
			status: http.StatusNotFound,
			msg:    "Habit not found",
		},
		{
			method: http.MethodGet,
			path:   "/api/habits?date=yesterday-ish",
			status: http.StatusBadRequest,
			msg:    "Invalid date",
		},
		{
			method: http.MethodPost,
			path:   "/api/assistant/analyze",
			body:   `{"description":"no title"}`,
			status: http.StatusBadRequest,
			msg:    "Title is required",
		},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			resp := ts.do(t, tc.method, tc.path, tc.body)

			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.msg, message(t, resp))
		})
	}
}

func TestCurrentUser(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodGet, "/api/users/current", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	u := decodeBody[models.User](t, resp)
	assert.Equal(t, sampleUser, u.ID)
	assert.Equal(t, "Jordan", u.FirstName)

	resp = ts.do(t, http.MethodGet, "/api/users/current", "", UserHeader, "someone-else")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "User not found", message(t, resp))

	resp = ts.do(t, http.MethodPatch, "/api/users/current", `{"totalFocusTime":175}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 175, decodeBody[models.User](t, resp).TotalFocusTime)
}

func TestFocusSessionRoutes(t *testing.T) {
	ts := newTestServer(t)

	// prime the cached list
	resp := ts.do(t, http.MethodGet, "/api/focus-sessions", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeBody[[]models.FocusSession](t, resp))

	resp = ts.do(t, http.MethodPost, "/api/focus-sessions",
		`{"taskLabel":"Focus Session","durationMinutes":25}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	created := decodeBody[models.FocusSession](t, resp)
	assert.Equal(t, models.KindFocus, created.Kind)
	assert.NotEmpty(t, created.ID)

	resp = ts.do(t, http.MethodGet, "/api/focus-sessions", "")
	sessions := decodeBody[[]models.FocusSession](t, resp)
	require.Len(t, sessions, 1)
	assert.Equal(t, 25, sessions[0].DurationMinutes)
}

func TestNoteRoutes(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodPost, "/api/notes",
		`{"title":"Lecture 3","content":"Limits","tags":["math"]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	note := decodeBody[models.Note](t, resp)

	resp = ts.do(t, http.MethodPatch, "/api/notes/"+note.ID, `{"content":"Limits and continuity"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Limits and continuity", decodeBody[models.Note](t, resp).Content)

	resp = ts.do(t, http.MethodGet, "/api/notes", "")
	notes := decodeBody[[]models.Note](t, resp)
	require.Len(t, notes, 1)
	assert.Equal(t, []string{"math"}, notes[0].Tags)

	resp = ts.do(t, http.MethodDelete, "/api/notes/"+note.ID, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestHabitRoutes(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodPost, "/api/habits", `{"name":"Drink water"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	habit := decodeBody[models.Habit](t, resp)

	resp = ts.do(t, http.MethodPatch, "/api/habits/"+habit.ID, `{"completed":true}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cases := []struct {
		query string
		want  int
	}{
		{query: "", want: 1},
		{query: "?date=2026-09-14", want: 1},
		{query: "?date=2026-09-13", want: 0},
	}

	for _, tc := range cases {
		resp := ts.do(t, http.MethodGet, "/api/habits"+tc.query, "")
		require.Equal(t, http.StatusOK, resp.StatusCode)

		habits := decodeBody[[]models.Habit](t, resp)
		assert.Len(t, habits, tc.want, tc.query)

		for _, h := range habits {
			assert.True(t, h.Completed)
		}
	}
}

func TestStatsRoute(t *testing.T) {
	ts := newTestServer(t)

	for _, body := range []string{
		`{"durationMinutes":25}`,
		`{"durationMinutes":5,"kind":"break"}`,
	} {
		resp := ts.do(t, http.MethodPost, "/api/focus-sessions", body)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := ts.do(t, http.MethodGet, "/api/stats", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got struct {
		TotalSessions     int `json:"totalSessions"`
		TotalFocusMinutes int `json:"totalFocusMinutes"`
		TodaySessions     int `json:"todaySessions"`
		Level             int `json:"level"`
	}

	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, 1, got.TotalSessions)
	assert.Equal(t, 25, got.TotalFocusMinutes)
	assert.Equal(t, 1, got.TodaySessions)
	assert.Equal(t, 12, got.Level)
}

func TestDashboard(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(b), `id="level"`)

	resp = ts.do(t, http.MethodGet, "/web/style.css", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAssistantRoutes(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(t, http.MethodPost, "/api/assistant/analyze", `{"title":"Essay"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "analyzed Essay", decodeBody[assistant.Suggestion](t, resp).Reasoning)

	resp = ts.do(t, http.MethodPost, "/api/assistant/breakdown", `{"title":"Essay"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"Plan Essay", "Do Essay"}, decodeBody[[]string](t, resp))

	for _, title := range []string{"Lab report", "Flashcards"} {
		resp = ts.do(t, http.MethodPost, "/api/tasks", `{"title":"`+title+`"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp = ts.do(t, http.MethodPost, "/api/assistant/groups", `{}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decodeBody[[]assistant.GroupSuggestion](t, resp))
	assert.Len(t, ts.ai.grouped, 2)
}

func TestRecoverer(t *testing.T) {
	h := chain(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("boom")
		}),
		requestLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		recoverer,
	)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Internal Server Error"}`, rec.Body.String())
}
