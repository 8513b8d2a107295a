package timer

import (
	"context"
	"slices"

	"github.com/maruel/natural"

	"github.com/ayoisaiah/focusflow/internal/cache"
	"github.com/ayoisaiah/focusflow/internal/models"
)

// TaskLister reads a user's tasks.
type TaskLister interface {
	ListTasks(ctx context.Context, userID string) ([]models.Task, error)
}

// taskLabeler is the part of the controller the binder changes.
type taskLabeler interface {
	SetTask(id, label string)
}

// Binder lets the user pick an open task whose title labels the run. It never
// modifies the task.
type Binder struct {
	tasks  TaskLister
	cache  *cache.Cache
	run    taskLabeler
	userID string
}

func NewBinder(userID string, tasks TaskLister, c *cache.Cache, run taskLabeler) *Binder {
	return &Binder{
		userID: userID,
		tasks:  tasks,
		cache:  c,
		run:    run,
	}
}

// Candidates returns the tasks that are not completed, in natural title
// order.
func (b *Binder) Candidates(ctx context.Context) ([]models.Task, error) {
	tasks, err := cache.Fetch(ctx, b.cache, cache.TasksKey(b.userID),
		func(ctx context.Context) ([]models.Task, error) {
			return b.tasks.ListTasks(ctx, b.userID)
		},
	)
	if err != nil {
		return nil, err
	}

	open := make([]models.Task, 0, len(tasks))

	for i := range tasks {
		if !tasks[i].Completed {
			open = append(open, tasks[i])
		}
	}

	slices.SortStableFunc(open, func(a, b models.Task) int {
		switch {
		case natural.Less(a.Title, b.Title):
			return -1
		case natural.Less(b.Title, a.Title):
			return 1
		default:
			return 0
		}
	})

	return open, nil
}

// Bind labels the run with the task's title.
func (b *Binder) Bind(task models.Task) {
	b.run.SetTask(task.ID, task.Title)
}

// Unbind removes the label.
func (b *Binder) Unbind() {
	b.run.SetTask("", "")
}
