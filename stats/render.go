package stats

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hako/durafmt"
	"github.com/pterm/pterm"

	"github.com/ayoisaiah/focusflow/internal/timeutil"
	"github.com/ayoisaiah/focusflow/internal/ui"
)

const (
	barChartChar  = "▇"
	dateLayout    = "January 02, 2006"
	noSessionsMsg = "No focus sessions found for the specified time range"
)

func formatMinutes(mins int) string {
	//nolint:gomnd // limit to first 2 units
	return durafmt.Parse(time.Duration(mins) * time.Minute).
		LimitToUnit("hours").
		LimitFirstN(2).
		String()
}

// getSummary retrieves the focus summary for the reporting period.
func getSummary(s *Summary) string {
	header := fmt.Sprintf("%s\n", ui.Blue("Summary"))

	timeLogged := fmt.Sprintf(
		"Time focused: %s\n",
		ui.Green(formatMinutes(s.TotalFocusMinutes)),
	)

	completed := fmt.Sprintln(
		"Sessions completed:",
		ui.Green(s.TotalSessions),
	)

	today := fmt.Sprintf(
		"Today: %s in %s\n",
		ui.Green(formatMinutes(s.TodayFocusMinutes)),
		ui.Green(pluralize(s.TodaySessions, "session")),
	)

	week := fmt.Sprintf(
		"This week: %s\n",
		ui.Green(formatMinutes(s.WeeklyFocusMinutes)),
	)

	return header + timeLogged + completed + today + week
}

func getProfile(s *Summary) string {
	header := fmt.Sprintf("\n%s\n", ui.Blue("Profile"))

	name := ""
	if s.Name != "" {
		name = fmt.Sprintln("Name:", ui.Highlight(s.Name))
	}

	level := fmt.Sprintln("Level:", ui.Green(s.Level))
	streak := fmt.Sprintln("Current streak:", ui.Green(pluralize(s.CurrentStreak, "day")))
	total := fmt.Sprintln(
		"Total focus time:",
		ui.Green(timeutil.FormatMinutes(s.ProfileFocusMinutes)),
	)

	return header + name + level + streak + total
}

func getTasks(s *Summary) string {
	header := fmt.Sprintf("\n%s\n", ui.Blue("Tasks"))

	completed := fmt.Sprintf(
		"Completed: %s of %s (%s)\n",
		ui.Green(s.CompletedTasks),
		ui.Green(s.TotalTasks),
		ui.Green(fmt.Sprintf("%.0f%%", s.CompletionRate)),
	)

	week := fmt.Sprintf(
		"This week: %s of %s\n",
		ui.Green(s.WeeklyTasksCompleted),
		ui.Green(s.WeeklyTasks),
	)

	return header + completed + week
}

func getAchievements(s *Summary) string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("\n%s\n", ui.Blue("Achievements")))

	for _, a := range s.Achievements {
		mark := ui.Red("✗")
		if a.Unlocked {
			mark = ui.Green("✓")
		}

		builder.WriteString(fmt.Sprintf("%s %s: %s\n", mark, a.Title, a.Description))
	}

	return builder.String()
}

func getBarChart(days []Day) string {
	if len(days) == 0 {
		return ""
	}

	header := ui.Blue("\nDaily breakdown (minutes)")

	bars := make(pterm.Bars, 0, len(days))

	for _, d := range days {
		bars = append(bars, pterm.Bar{
			Value: d.FocusMinutes,
			Label: d.Date.Format("Mon Jan 02"),
		})
	}

	chart, err := pterm.DefaultBarChart.WithHorizontalBarCharacter(barChartChar).
		WithHorizontal().
		WithShowValue().
		WithBars(bars).
		Srender()
	if err != nil {
		pterm.Error.Println(err)
		return ""
	}

	return header + chart
}

func pluralize(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}

	return fmt.Sprintf("%d %ss", n, word)
}

func printSessionsTable(w io.Writer, s *Summary, timeFormat string) {
	if len(s.Sessions) == 0 {
		fmt.Fprintln(w, pterm.Info.Sprint(noSessionsMsg))
		return
	}

	data := [][]string{
		{"#", "COMPLETED", "TASK", "DURATION"},
	}

	for i := range s.Sessions {
		sess := &s.Sessions[i]

		data = append(data, []string{
			fmt.Sprintf("%d", i+1),
			sess.CompletedAt.Local().Format(dateLayout + " " + timeFormat),
			sess.TaskLabel,
			formatMinutes(sess.DurationMinutes),
		})
	}

	if err := ui.PrintTable(w, data); err != nil {
		fmt.Fprintln(w, pterm.Error.Sprintf("Failed to output session table: %s", err))
	}
}

// Show writes the summary to w. With list set, the sessions in the reporting
// period are printed as a table as well.
func Show(w io.Writer, s *Summary, list bool, timeFormat string) {
	start := "the beginning"
	if !s.Since.IsZero() {
		start = s.Since.Format(dateLayout)
	}

	timePeriod := "Reporting period: " + start + " - " + s.GeneratedAt.Format(dateLayout)

	header := pterm.DefaultHeader.WithBackgroundStyle(pterm.NewStyle(pterm.BgYellow)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Sprintfln("%s", timePeriod)

	output := fmt.Sprint(
		header,
		getSummary(s),
		getProfile(s),
		getTasks(s),
		getAchievements(s),
		getBarChart(s.Days),
	)

	fmt.Fprintln(w, strings.TrimSpace(output))

	if list {
		printSessionsTable(w, s, timeFormat)
	}
}
