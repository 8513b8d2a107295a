// Package models defines the records shared by the store, the REST API, and
// the terminal timer.
package models

import (
	"strings"
	"time"
)

// Kind distinguishes focus runs from break runs.
type Kind string

const (
	KindFocus Kind = "focus"
	KindBreak Kind = "break"
)

func (k Kind) Valid() bool {
	return k == KindFocus || k == KindBreak
}

// Priority of a task.
type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityUrgent, PriorityMedium, PriorityLow:
		return true
	}

	return false
}

// DefaultTaskLabel is recorded when a focus run has no bound task.
const DefaultTaskLabel = "Focus Session"

type User struct {
	CreatedAt      time.Time `json:"createdAt"`
	ID             string    `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	Level          int       `json:"level"`
	TotalFocusTime int       `json:"totalFocusTime"` // minutes
	CurrentStreak  int       `json:"currentStreak"`
}

// FullName joins the first and last names.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

type Task struct {
	CreatedAt   time.Time  `json:"createdAt"`
	DueDate     *time.Time `json:"dueDate"`
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    Priority   `json:"priority"`
	Completed   bool       `json:"completed"`
}

// FocusSession is the durable record of one completed run. It is never
// modified after creation.
type FocusSession struct {
	CompletedAt     time.Time `json:"completedAt"`
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	TaskID          string    `json:"taskId,omitempty"`
	TaskLabel       string    `json:"taskLabel"`
	Kind            Kind      `json:"kind"`
	DurationMinutes int       `json:"durationMinutes"`
}

type Note struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
}

// Habit is a per-day check item.
type Habit struct {
	Date      time.Time `json:"date"`
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Completed bool      `json:"completed"`
}
