package models

import (
	"strings"
	"time"

	"github.com/ayoisaiah/focusflow/internal/apperr"
)

var (
	ErrInvalidInput = &apperr.Error{
		Message: "invalid %s data",
	}

	errRequired = &apperr.Error{
		Message: "%s is required",
	}

	errInvalidPriority = &apperr.Error{
		Message: "unknown priority %q",
	}

	errInvalidKind = &apperr.Error{
		Message: "unknown session kind %q",
	}

	errNegativeDuration = &apperr.Error{
		Message: "duration cannot be negative",
	}
)

// invalid reports err as invalid input for the named entity.
func invalid(entity string, err error) error {
	return ErrInvalidInput.Fmt(entity).Wrap(err)
}

// NewTask is the payload for creating a task.
type NewTask struct {
	DueDate     *time.Time `json:"dueDate"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    Priority   `json:"priority"`
}

func (n *NewTask) Validate() error {
	n.Title = strings.TrimSpace(n.Title)
	if n.Title == "" {
		return invalid("task", errRequired.Fmt("title"))
	}

	if n.Priority == "" {
		n.Priority = PriorityMedium
	}

	if !n.Priority.Valid() {
		return invalid("task", errInvalidPriority.Fmt(n.Priority))
	}

	return nil
}

// TaskPatch updates the non-nil fields of a task.
type TaskPatch struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Priority    *Priority  `json:"priority"`
	Completed   *bool      `json:"completed"`
	DueDate     *time.Time `json:"dueDate"`
}

func (p *TaskPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return invalid("task", errRequired.Fmt("title"))
	}

	if p.Priority != nil && !p.Priority.Valid() {
		return invalid("task", errInvalidPriority.Fmt(*p.Priority))
	}

	return nil
}

// Apply writes the patch onto t.
func (p *TaskPatch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}

	if p.Description != nil {
		t.Description = *p.Description
	}

	if p.Priority != nil {
		t.Priority = *p.Priority
	}

	if p.Completed != nil {
		t.Completed = *p.Completed
	}

	if p.DueDate != nil {
		t.DueDate = p.DueDate
	}
}

// NewFocusSession is the payload for recording a completed run. CompletedAt
// is a proposal; the store assigns the final value.
type NewFocusSession struct {
	CompletedAt     time.Time `json:"completedAt"`
	TaskID          string    `json:"taskId,omitempty"`
	TaskLabel       string    `json:"taskLabel"`
	Kind            Kind      `json:"kind"`
	DurationMinutes int       `json:"durationMinutes"`
}

func (n *NewFocusSession) Validate() error {
	if n.DurationMinutes < 0 {
		return invalid("focus session", errNegativeDuration)
	}

	if n.Kind == "" {
		n.Kind = KindFocus
	}

	if !n.Kind.Valid() {
		return invalid("focus session", errInvalidKind.Fmt(n.Kind))
	}

	if strings.TrimSpace(n.TaskLabel) == "" {
		n.TaskLabel = DefaultTaskLabel
	}

	return nil
}

type NewNote struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
}

func (n *NewNote) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return invalid("note", errRequired.Fmt("title"))
	}

	if strings.TrimSpace(n.Content) == "" {
		return invalid("note", errRequired.Fmt("content"))
	}

	return nil
}

type NotePatch struct {
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Tags    *[]string `json:"tags"`
}

func (p *NotePatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return invalid("note", errRequired.Fmt("title"))
	}

	if p.Content != nil && strings.TrimSpace(*p.Content) == "" {
		return invalid("note", errRequired.Fmt("content"))
	}

	return nil
}

func (p *NotePatch) Apply(n *Note) {
	if p.Title != nil {
		n.Title = *p.Title
	}

	if p.Content != nil {
		n.Content = *p.Content
	}

	if p.Tags != nil {
		n.Tags = *p.Tags
	}
}

type NewHabit struct {
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
}

func (n *NewHabit) Validate() error {
	if strings.TrimSpace(n.Name) == "" {
		return invalid("habit", errRequired.Fmt("name"))
	}

	return nil
}

type HabitPatch struct {
	Name      *string `json:"name"`
	Completed *bool   `json:"completed"`
}

func (p *HabitPatch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return invalid("habit", errRequired.Fmt("name"))
	}

	return nil
}

func (p *HabitPatch) Apply(h *Habit) {
	if p.Name != nil {
		h.Name = *p.Name
	}

	if p.Completed != nil {
		h.Completed = *p.Completed
	}
}

// UserPatch updates profile fields. TotalFocusTime replaces the stored value.
type UserPatch struct {
	FirstName      *string `json:"firstName"`
	LastName       *string `json:"lastName"`
	Email          *string `json:"email"`
	Level          *int    `json:"level"`
	TotalFocusTime *int    `json:"totalFocusTime"`
	CurrentStreak  *int    `json:"currentStreak"`
}

func (p *UserPatch) Validate() error {
	if p.Email != nil && !strings.Contains(*p.Email, "@") {
		return invalid("user", errRequired.Fmt("a valid email"))
	}

	if p.TotalFocusTime != nil && *p.TotalFocusTime < 0 {
		return invalid("user", errNegativeDuration)
	}

	return nil
}

func (p *UserPatch) Apply(u *User) {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}

	if p.LastName != nil {
		u.LastName = *p.LastName
	}

	if p.Email != nil {
		u.Email = *p.Email
	}

	if p.Level != nil {
		u.Level = *p.Level
	}

	if p.TotalFocusTime != nil {
		u.TotalFocusTime = *p.TotalFocusTime
	}

	if p.CurrentStreak != nil {
		u.CurrentStreak = *p.CurrentStreak
	}
}
