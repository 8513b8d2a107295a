package server

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/ayoisaiah/focusflow/assistant"
	"github.com/ayoisaiah/focusflow/internal/apperr"
	"github.com/ayoisaiah/focusflow/internal/cache"
	"github.com/ayoisaiah/focusflow/internal/models"
	"github.com/ayoisaiah/focusflow/internal/static"
	"github.com/ayoisaiah/focusflow/internal/timeutil"
	"github.com/ayoisaiah/focusflow/stats"
)

var (
	errInvalidDate = &apperr.Error{
		Message: "invalid date %q",
	}

	errInvalidSince = &apperr.Error{
		Message: "invalid since value %q",
	}
)

func (s *Server) routes(mux *http.ServeMux) {
	mux.Handle("GET /api/users/current", handlerFunc(s.getUser))
	mux.Handle("PATCH /api/users/current", handlerFunc(s.updateUser))

	mux.Handle("GET /api/tasks", handlerFunc(s.listTasks))
	mux.Handle("POST /api/tasks", handlerFunc(s.createTask))
	mux.Handle("PATCH /api/tasks/{id}", handlerFunc(s.updateTask))
	mux.Handle("DELETE /api/tasks/{id}", handlerFunc(s.deleteTask))

	mux.Handle("GET /api/focus-sessions", handlerFunc(s.listSessions))
	mux.Handle("POST /api/focus-sessions", handlerFunc(s.createSession))

	mux.Handle("GET /api/notes", handlerFunc(s.listNotes))
	mux.Handle("POST /api/notes", handlerFunc(s.createNote))
	mux.Handle("PATCH /api/notes/{id}", handlerFunc(s.updateNote))
	mux.Handle("DELETE /api/notes/{id}", handlerFunc(s.deleteNote))

	mux.Handle("GET /api/habits", handlerFunc(s.listHabits))
	mux.Handle("POST /api/habits", handlerFunc(s.createHabit))
	mux.Handle("PATCH /api/habits/{id}", handlerFunc(s.updateHabit))

	mux.Handle("GET /api/stats", handlerFunc(s.getStats))

	mux.Handle("POST /api/assistant/analyze", handlerFunc(s.analyzeTask))
	mux.Handle("POST /api/assistant/groups", handlerFunc(s.groupTasks))
	mux.Handle("POST /api/assistant/breakdown", handlerFunc(s.breakDownTask))

	mux.Handle("GET /web/", http.StripPrefix("/web/", http.FileServerFS(static.Assets())))
	mux.Handle("GET /{$}", handlerFunc(s.dashboard))
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) error {
	u, err := s.db.GetUser(r.Context(), userID(r.Context()))
	if err != nil {
		return failure(err, "user", "get user")
	}

	writeJSON(r.Context(), w, http.StatusOK, u)

	return nil
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) error {
	var patch models.UserPatch
	if err := decode(w, r, &patch); err != nil {
		return failure(err, "user", "update user")
	}

	u, err := s.db.UpdateUser(r.Context(), userID(r.Context()), &patch)
	if err != nil {
		return failure(err, "user", "update user")
	}

	writeJSON(r.Context(), w, http.StatusOK, u)

	return nil
}

func (s *Server) tasks(r *http.Request) ([]models.Task, error) {
	id := userID(r.Context())

	return cache.Fetch(r.Context(), s.cache, cache.TasksKey(id),
		func(ctx context.Context) ([]models.Task, error) {
			return s.db.ListTasks(ctx, id)
		},
	)
}

func (s *Server) sessions(r *http.Request) ([]models.FocusSession, error) {
	id := userID(r.Context())

	return cache.Fetch(r.Context(), s.cache, cache.SessionsKey(id),
		func(ctx context.Context) ([]models.FocusSession, error) {
			return s.db.ListFocusSessions(ctx, id)
		},
	)
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) error {
	tasks, err := s.tasks(r)
	if err != nil {
		return failure(err, "task", "get tasks")
	}

	writeJSON(r.Context(), w, http.StatusOK, tasks)

	return nil
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) error {
	var in models.NewTask
	if err := decode(w, r, &in); err != nil {
		return failure(err, "task", "create task")
	}

	id := userID(r.Context())

	t, err := s.db.CreateTask(r.Context(), id, &in)
	if err != nil {
		return failure(err, "task", "create task")
	}

	s.cache.Invalidate(cache.TasksKey(id))

	writeJSON(r.Context(), w, http.StatusCreated, t)

	return nil
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) error {
	var patch models.TaskPatch
	if err := decode(w, r, &patch); err != nil {
		return failure(err, "task", "update task")
	}

	id := userID(r.Context())

	t, err := s.db.UpdateTask(r.Context(), id, r.PathValue("id"), &patch)
	if err != nil {
		return failure(err, "task", "update task")
	}

	s.cache.Invalidate(cache.TasksKey(id))

	writeJSON(r.Context(), w, http.StatusOK, t)

	return nil
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) error {
	id := userID(r.Context())

	if err := s.db.DeleteTask(r.Context(), id, r.PathValue("id")); err != nil {
		return failure(err, "task", "delete task")
	}

	s.cache.Invalidate(cache.TasksKey(id))

	writeJSON(r.Context(), w, http.StatusNoContent, nil)

	return nil
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) error {
	sessions, err := s.sessions(r)
	if err != nil {
		return failure(err, "session", "get focus sessions")
	}

	writeJSON(r.Context(), w, http.StatusOK, sessions)

	return nil
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) error {
	var in models.NewFocusSession
	if err := decode(w, r, &in); err != nil {
		return failure(err, "session", "create focus session")
	}

	id := userID(r.Context())

	fs, err := s.db.CreateFocusSession(r.Context(), id, &in)
	if err != nil {
		return failure(err, "session", "create focus session")
	}

	s.cache.Invalidate(cache.SessionsKey(id))

	writeJSON(r.Context(), w, http.StatusCreated, fs)

	return nil
}

func (s *Server) listNotes(w http.ResponseWriter, r *http.Request) error {
	notes, err := s.db.ListNotes(r.Context(), userID(r.Context()))
	if err != nil {
		return failure(err, "note", "get notes")
	}

	writeJSON(r.Context(), w, http.StatusOK, notes)

	return nil
}

func (s *Server) createNote(w http.ResponseWriter, r *http.Request) error {
	var in models.NewNote
	if err := decode(w, r, &in); err != nil {
		return failure(err, "note", "create note")
	}

	n, err := s.db.CreateNote(r.Context(), userID(r.Context()), &in)
	if err != nil {
		return failure(err, "note", "create note")
	}

	writeJSON(r.Context(), w, http.StatusCreated, n)

	return nil
}

func (s *Server) updateNote(w http.ResponseWriter, r *http.Request) error {
	var patch models.NotePatch
	if err := decode(w, r, &patch); err != nil {
		return failure(err, "note", "update note")
	}

	n, err := s.db.UpdateNote(r.Context(), userID(r.Context()), r.PathValue("id"), &patch)
	if err != nil {
		return failure(err, "note", "update note")
	}

	writeJSON(r.Context(), w, http.StatusOK, n)

	return nil
}

func (s *Server) deleteNote(w http.ResponseWriter, r *http.Request) error {
	if err := s.db.DeleteNote(r.Context(), userID(r.Context()), r.PathValue("id")); err != nil {
		return failure(err, "note", "delete note")
	}

	writeJSON(r.Context(), w, http.StatusNoContent, nil)

	return nil
}

// habitDay reads the ?date= filter, defaulting to today.
func (s *Server) habitDay(r *http.Request) (time.Time, error) {
	now := s.now()

	v := r.URL.Query().Get("date")
	if v == "" {
		return now, nil
	}

	day, err := time.ParseInLocation(time.DateOnly, v, now.Location())
	if err != nil {
		return time.Time{}, &apiError{
			status:  http.StatusBadRequest,
			message: "Invalid date",
			cause:   errInvalidDate.Fmt(v).Wrap(err),
		}
	}

	return day, nil
}

func (s *Server) listHabits(w http.ResponseWriter, r *http.Request) error {
	day, err := s.habitDay(r)
	if err != nil {
		return err
	}

	habits, err := s.db.ListHabits(r.Context(), userID(r.Context()), day)
	if err != nil {
		return failure(err, "habit", "get habits")
	}

	writeJSON(r.Context(), w, http.StatusOK, habits)

	return nil
}

func (s *Server) createHabit(w http.ResponseWriter, r *http.Request) error {
	var in models.NewHabit
	if err := decode(w, r, &in); err != nil {
		return failure(err, "habit", "create habit")
	}

	h, err := s.db.CreateHabit(r.Context(), userID(r.Context()), &in)
	if err != nil {
		return failure(err, "habit", "create habit")
	}

	writeJSON(r.Context(), w, http.StatusCreated, h)

	return nil
}

func (s *Server) updateHabit(w http.ResponseWriter, r *http.Request) error {
	var patch models.HabitPatch
	if err := decode(w, r, &patch); err != nil {
		return failure(err, "habit", "update habit")
	}

	h, err := s.db.UpdateHabit(r.Context(), userID(r.Context()), r.PathValue("id"), &patch)
	if err != nil {
		return failure(err, "habit", "update habit")
	}

	writeJSON(r.Context(), w, http.StatusOK, h)

	return nil
}

func (s *Server) summary(r *http.Request) (*stats.Summary, error) {
	now := s.now()

	var since time.Time

	if v := r.URL.Query().Get("since"); v != "" {
		t, err := timeutil.FromStr(v, now)
		if err != nil {
			return nil, &apiError{
				status:  http.StatusBadRequest,
				message: "Invalid since date",
				cause:   errInvalidSince.Fmt(v).Wrap(err),
			}
		}

		since = t
	}

	u, err := s.db.GetUser(r.Context(), userID(r.Context()))
	if err != nil {
		return nil, failure(err, "user", "get stats")
	}

	tasks, err := s.tasks(r)
	if err != nil {
		return nil, failure(err, "task", "get stats")
	}

	sessions, err := s.sessions(r)
	if err != nil {
		return nil, failure(err, "session", "get stats")
	}

	return stats.Compute(now, u, tasks, sessions, since), nil
}

func (s *Server) getStats(w http.ResponseWriter, r *http.Request) error {
	sum, err := s.summary(r)
	if err != nil {
		return err
	}

	writeJSON(r.Context(), w, http.StatusOK, sum)

	return nil
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) error {
	sum, err := s.summary(r)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := stats.RenderHTML(&buf, sum); err != nil {
		return failure(err, "dashboard", "render dashboard")
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	_, err = buf.WriteTo(w)

	return err
}

type taskText struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (t *taskText) validate() error {
	if t.Title == "" {
		return &apiError{
			status:  http.StatusBadRequest,
			message: "Title is required",
		}
	}

	return nil
}

func (s *Server) analyzeTask(w http.ResponseWriter, r *http.Request) error {
	var in taskText
	if err := decode(w, r, &in); err != nil {
		return failure(err, "task", "analyze task")
	}

	if err := in.validate(); err != nil {
		return err
	}

	writeJSON(r.Context(), w, http.StatusOK, s.ai.Analyze(r.Context(), in.Title, in.Description))

	return nil
}

func (s *Server) groupTasks(w http.ResponseWriter, r *http.Request) error {
	var in struct {
		Tasks []assistant.TaskInput `json:"tasks"`
	}

	if err := decode(w, r, &in); err != nil {
		return failure(err, "task", "group tasks")
	}

	if len(in.Tasks) == 0 {
		tasks, err := s.tasks(r)
		if err != nil {
			return failure(err, "task", "group tasks")
		}

		for i := range tasks {
			if tasks[i].Completed {
				continue
			}

			in.Tasks = append(in.Tasks, assistant.TaskInput{
				Title:       tasks[i].Title,
				Description: tasks[i].Description,
				Priority:    tasks[i].Priority,
			})
		}
	}

	groups := s.ai.Groups(r.Context(), in.Tasks)
	if groups == nil {
		groups = []assistant.GroupSuggestion{}
	}

	writeJSON(r.Context(), w, http.StatusOK, groups)

	return nil
}

func (s *Server) breakDownTask(w http.ResponseWriter, r *http.Request) error {
	var in taskText
	if err := decode(w, r, &in); err != nil {
		return failure(err, "task", "break down task")
	}

	if err := in.validate(); err != nil {
		return err
	}

	writeJSON(r.Context(), w, http.StatusOK, s.ai.BreakDown(r.Context(), in.Title, in.Description))

	return nil
}
