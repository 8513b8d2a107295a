// Package stats computes and reports progress statistics from a user's
// tasks and focus sessions
package stats

import (
	"encoding/json"
	"time"

	"github.com/ayoisaiah/focusflow/internal/models"
	"github.com/ayoisaiah/focusflow/internal/timeutil"
)

const percent = 100

type (
	// Day is the activity on one calendar day.
	Day struct {
		Date           time.Time `json:"date"`
		Label          string    `json:"label"`
		CompletedTasks int       `json:"completedTasks"`
		FocusMinutes   int       `json:"focusMinutes"`
		Sessions       int       `json:"sessions"`
	}

	Achievement struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Unlocked    bool   `json:"unlocked"`
	}

	// Summary is the progress dashboard. Totals only include sessions that
	// completed at or after Since; a zero Since means all time.
	Summary struct {
		GeneratedAt          time.Time             `json:"generatedAt"`
		Since                time.Time             `json:"since"`
		Name                 string                `json:"name"`
		Days                 []Day                 `json:"days"`
		Achievements         []Achievement         `json:"achievements"`
		Sessions             []models.FocusSession `json:"-"`
		CompletionRate       float64               `json:"completionRate"`
		Level                int                   `json:"level"`
		CurrentStreak        int                   `json:"currentStreak"`
		ProfileFocusMinutes  int                   `json:"profileFocusMinutes"`
		TotalFocusMinutes    int                   `json:"totalFocusMinutes"`
		TotalSessions        int                   `json:"totalSessions"`
		TodaySessions        int                   `json:"todaySessions"`
		TodayFocusMinutes    int                   `json:"todayFocusMinutes"`
		WeeklyFocusMinutes   int                   `json:"weeklyFocusMinutes"`
		WeeklyTasks          int                   `json:"weeklyTasks"`
		WeeklyTasksCompleted int                   `json:"weeklyTasksCompleted"`
		CompletedTasks       int                   `json:"completedTasks"`
		TotalTasks           int                   `json:"totalTasks"`
	}
)

// Compute builds the summary for user as of now.
func Compute(
	now time.Time,
	user *models.User,
	tasks []models.Task,
	sessions []models.FocusSession,
	since time.Time,
) *Summary {
	s := &Summary{
		GeneratedAt: now,
		Since:       since,
		TotalTasks:  len(tasks),
	}

	if user != nil {
		s.Name = user.FullName()
		s.Level = user.Level
		s.CurrentStreak = user.CurrentStreak
		s.ProfileFocusMinutes = user.TotalFocusTime
	}

	weekAgo := now.AddDate(0, 0, -timeutil.DaysInAWeek)

	days := timeutil.LastNDays(now, timeutil.DaysInAWeek)
	s.Days = make([]Day, len(days))

	for i, d := range days {
		s.Days[i] = Day{
			Date:  d,
			Label: d.Format("Mon"),
		}
	}

	for i := range tasks {
		t := &tasks[i]

		if t.Completed {
			s.CompletedTasks++
		}

		if !t.CreatedAt.Before(weekAgo) {
			s.WeeklyTasks++

			if t.Completed {
				s.WeeklyTasksCompleted++
			}
		}

		if t.Completed {
			if day := dayIndex(days, t.CreatedAt); day >= 0 {
				s.Days[day].CompletedTasks++
			}
		}
	}

	if s.TotalTasks > 0 {
		s.CompletionRate = float64(s.CompletedTasks) / float64(s.TotalTasks) * percent
	}

	for i := range sessions {
		sess := &sessions[i]

		if sess.Kind != models.KindFocus {
			continue
		}

		if !since.IsZero() && sess.CompletedAt.Before(since) {
			continue
		}

		s.Sessions = append(s.Sessions, *sess)
		s.TotalSessions++
		s.TotalFocusMinutes += sess.DurationMinutes

		if timeutil.SameDay(now, sess.CompletedAt) {
			s.TodaySessions++
			s.TodayFocusMinutes += sess.DurationMinutes
		}

		if !sess.CompletedAt.Before(weekAgo) {
			s.WeeklyFocusMinutes += sess.DurationMinutes
		}

		if day := dayIndex(days, sess.CompletedAt); day >= 0 {
			s.Days[day].Sessions++
			s.Days[day].FocusMinutes += sess.DurationMinutes
		}
	}

	s.Achievements = []Achievement{
		{
			Title:       "First Task",
			Description: "Complete your first task",
			Unlocked:    s.CompletedTasks > 0,
		},
		{
			Title:       "Focus Master",
			Description: "Complete 10 focus sessions",
			Unlocked:    s.TotalSessions >= 10,
		},
		{
			Title:       "Task Warrior",
			Description: "Complete 25 tasks",
			Unlocked:    s.CompletedTasks >= 25,
		},
		{
			Title:       "Consistency King",
			Description: "Maintain a 7-day streak",
			Unlocked:    s.CurrentStreak >= 7,
		},
	}

	return s
}

// dayIndex returns the position of t's day in days, or -1.
func dayIndex(days []time.Time, t time.Time) int {
	for i, d := range days {
		if timeutil.SameDay(d, t) {
			return i
		}
	}

	return -1
}

// ToJSON returns the summary as indented JSON.
func (s *Summary) ToJSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
