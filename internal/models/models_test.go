package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTaskValidate(t *testing.T) {
	n := NewTask{Title: "  Read chapter 4 "}
	require.NoError(t, n.Validate())
	assert.Equal(t, "Read chapter 4", n.Title)
	assert.Equal(t, PriorityMedium, n.Priority)

	bad := NewTask{Title: "x", Priority: "someday"}
	err := bad.Validate()
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Contains(t, err.Error(), "invalid task data")

	assert.Error(t, (&NewTask{}).Validate())
}

func TestNewFocusSessionValidate(t *testing.T) {
	n := NewFocusSession{DurationMinutes: 25}
	require.NoError(t, n.Validate())
	assert.Equal(t, KindFocus, n.Kind)
	assert.Equal(t, DefaultTaskLabel, n.TaskLabel)

	assert.Error(t, (&NewFocusSession{DurationMinutes: -1}).Validate())
	assert.Error(t, (&NewFocusSession{Kind: "nap"}).Validate())
}

func TestTaskPatchApply(t *testing.T) {
	task := Task{Title: "Essay", Priority: PriorityLow}

	done := true
	prio := PriorityUrgent
	p := TaskPatch{Completed: &done, Priority: &prio}

	require.NoError(t, p.Validate())
	p.Apply(&task)

	assert.True(t, task.Completed)
	assert.Equal(t, PriorityUrgent, task.Priority)
	assert.Equal(t, "Essay", task.Title)
}

func TestUserPatch(t *testing.T) {
	u := User{FirstName: "Sam", LastName: "Lee", TotalFocusTime: 150}

	total := 175
	p := UserPatch{TotalFocusTime: &total}
	require.NoError(t, p.Validate())
	p.Apply(&u)

	assert.Equal(t, 175, u.TotalFocusTime)
	assert.Equal(t, "Sam Lee", u.FullName())

	neg := -3
	assert.Error(t, (&UserPatch{TotalFocusTime: &neg}).Validate())
}
