package timer

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"github.com/ayoisaiah/focusflow/internal/cache"
	"github.com/ayoisaiah/focusflow/internal/config"
	"github.com/ayoisaiah/focusflow/internal/models"
	"github.com/ayoisaiah/focusflow/internal/timeutil"
)

const (
	padding  = 2
	maxWidth = 80

	noTaskOption = ""
)

// SessionLister reads a user's recorded sessions.
type SessionLister interface {
	ListFocusSessions(ctx context.Context, userID string) ([]models.FocusSession, error)
}

type (
	changedMsg struct{}

	refreshMsg struct{}

	sessionsChangedMsg struct{}

	tasksLoadedMsg struct {
		err   error
		tasks []models.Task
	}

	progressLoadedMsg struct {
		err  error
		mins int
	}
)

type styles struct {
	base      lipgloss.Style
	main      lipgloss.Style
	secondary lipgloss.Style
	hint      lipgloss.Style
	focus     lipgloss.Style
	rest      lipgloss.Style
	info      lipgloss.Style
	err       lipgloss.Style
}

func newStyles(cfg *config.Config) styles {
	return styles{
		base:      lipgloss.NewStyle().Padding(1, padding),
		main:      lipgloss.NewStyle().Bold(true),
		secondary: lipgloss.NewStyle().Foreground(lipgloss.Color("#999999")),
		hint:      lipgloss.NewStyle().Foreground(lipgloss.Color("#666666")).Italic(true),
		focus: lipgloss.NewStyle().
			Foreground(lipgloss.Color(cfg.Focus.Color)).
			MarginRight(1).
			SetString(cfg.Focus.Message),
		rest: lipgloss.NewStyle().
			Foreground(lipgloss.Color(cfg.Break.Color)).
			MarginRight(1).
			SetString(cfg.Break.Message),
		info: lipgloss.NewStyle().Foreground(lipgloss.Color("#B0DB43")),
		err:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")),
	}
}

// Model is the interactive timer. It renders the controller's run and turns
// key presses into controller calls.
type Model struct {
	ctx         context.Context
	invalidated chan struct{}
	ctrl        *Controller
	binder      *Binder
	sessions    SessionLister
	cache       *cache.Cache
	taskForm    *huh.Form
	log         *slog.Logger
	now         func() time.Time
	styles      styles
	keys        keymap
	help        help.Model
	progress    progress.Model
	run         Run
	status      string
	userID      string
	taskChoice  string
	timeFormat  string
	tasks       []models.Task
	todayMins   int
	// completions is the controller count last handled by sync.
	completions uint64
	loading     bool
	reload      bool
	breakOffer  bool
}

// ModelOptions holds the collaborators of a Model.
type ModelOptions struct {
	Controller *Controller
	Binder     *Binder
	Sessions   SessionLister
	Cache      *cache.Cache
	Config     *config.Config
	Logger     *slog.Logger
	Now        func() time.Time
	UserID     string
}

func NewModel(ctx context.Context, opts ModelOptions) *Model {
	m := &Model{
		ctx:        ctx,
		ctrl:       opts.Controller,
		binder:     opts.Binder,
		sessions:   opts.Sessions,
		cache:      opts.Cache,
		userID:     opts.UserID,
		log:        opts.Logger,
		now:        opts.Now,
		styles:     newStyles(opts.Config),
		keys:       defaultKeymap,
		help:       help.New(),
		progress:   progress.New(progress.WithDefaultGradient()),
		timeFormat: opts.Config.TimeFormat(),
	}

	if m.log == nil {
		m.log = slog.Default()
	}

	if m.now == nil {
		m.now = time.Now
	}

	m.run = m.ctrl.Snapshot()
	m.completions = m.run.Completions

	m.invalidated = make(chan struct{}, 1)
	sessionsKey := cache.SessionsKey(m.userID)

	unsubscribe := m.cache.Subscribe(func(key string) {
		if key != sessionsKey {
			return
		}

		select {
		case m.invalidated <- struct{}{}:
		default:
		}
	})
	context.AfterFunc(ctx, unsubscribe)

	return m
}

// Run starts the interactive timer and blocks until the user quits.
func Run(ctx context.Context, m *Model) error {
	_, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()

	return err
}

func (m *Model) Init() tea.Cmd {
	m.loading = true

	return tea.Batch(
		m.waitForChange(),
		m.waitForInvalidation(),
		m.loadProgress(),
		m.refresh(),
	)
}

// waitForChange turns the controller's change signal into a message.
func (m *Model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.ctrl.Changes():
			return changedMsg{}
		case <-m.ctx.Done():
			return nil
		}
	}
}

// waitForInvalidation reports that the cached session list was dropped.
func (m *Model) waitForInvalidation() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.invalidated:
			return sessionsChangedMsg{}
		case <-m.ctx.Done():
			return nil
		}
	}
}

// refresh redraws once a second so that toasts expire on screen.
func (m *Model) refresh() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return refreshMsg{}
	})
}

// loadProgress sums today's focus minutes, reading the session list through
// the cache.
func (m *Model) loadProgress() tea.Cmd {
	ctx, userID, now := m.ctx, m.userID, m.now()

	return func() tea.Msg {
		sessions, err := cache.Fetch(ctx, m.cache, cache.SessionsKey(userID),
			func(ctx context.Context) ([]models.FocusSession, error) {
				return m.sessions.ListFocusSessions(ctx, userID)
			},
		)
		if err != nil {
			return progressLoadedMsg{err: err}
		}

		return progressLoadedMsg{mins: todayFocusMinutes(sessions, now)}
	}
}

func todayFocusMinutes(sessions []models.FocusSession, now time.Time) int {
	var total int

	for i := range sessions {
		s := &sessions[i]
		if s.Kind == models.KindFocus && timeutil.SameDay(s.CompletedAt, now) {
			total += s.DurationMinutes
		}
	}

	return total
}

func (m *Model) loadTasks() tea.Cmd {
	ctx := m.ctx

	return func() tea.Msg {
		tasks, err := m.binder.Candidates(ctx)

		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}

// sync takes a fresh snapshot and reacts to a run that has just completed.
func (m *Model) sync() {
	m.run = m.ctrl.Snapshot()

	justCompleted := m.run.Completions != m.completions
	m.completions = m.run.Completions

	if justCompleted {
		if m.run.Kind == models.KindFocus {
			m.breakOffer = true
		} else if err := m.ctrl.SwitchKind(models.KindFocus); err == nil {
			m.run = m.ctrl.Snapshot()
		}
	}
}

// reloadProgress starts a progress load, or queues one behind the load in
// flight.
func (m *Model) reloadProgress() tea.Cmd {
	if m.loading {
		m.reload = true
		return nil
	}

	m.loading = true

	return m.loadProgress()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.log.Debug(spew.Sdump(msg))

	switch msg := msg.(type) {
	case changedMsg:
		m.sync()

		return m, m.waitForChange()

	case sessionsChangedMsg:
		return m, tea.Batch(m.reloadProgress(), m.waitForInvalidation())

	case refreshMsg:
		m.run = m.ctrl.Snapshot()

		return m, m.refresh()

	case progressLoadedMsg:
		m.loading = false

		if m.reload {
			m.reload = false
			return m, m.reloadProgress()
		}

		if msg.err != nil {
			m.log.Warn("unable to load today's progress", slog.Any("error", msg.err))
			return m, nil
		}

		m.todayMins = msg.mins

		return m, nil
	}

	if m.taskForm != nil {
		return m.updateTaskForm(msg)
	}

	switch msg := msg.(type) {
	case tasksLoadedMsg:
		if msg.err != nil {
			m.status = "Unable to load tasks"
			m.log.Warn("unable to load tasks", slog.Any("error", msg.err))

			return m, nil
		}

		m.tasks = msg.tasks

		return m, m.openTaskForm()

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.progress.Width = min(msg.Width-padding*2-4, maxWidth)

		return m, nil

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress, _ = progressModel.(progress.Model)

		return m, cmd
	}

	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case m.breakOffer && key.Matches(msg, m.keys.enter, m.keys.takeBreak):
		m.breakOffer = false
		m.startBreak()

	case m.breakOffer && key.Matches(msg, m.keys.esc):
		m.breakOffer = false
		m.ctrl.Reset()

	case key.Matches(msg, m.keys.togglePlay):
		m.ctrl.Toggle()

	case key.Matches(msg, m.keys.reset):
		m.ctrl.Reset()

	case key.Matches(msg, m.keys.skip):
		m.ctrl.Skip()

	case key.Matches(msg, m.keys.longer):
		m.stepDuration(1)

	case key.Matches(msg, m.keys.shorter):
		m.stepDuration(-1)

	case key.Matches(msg, m.keys.takeBreak):
		m.startBreak()

	case key.Matches(msg, m.keys.task):
		if m.run.State == StateRunning {
			m.status = "Pause the timer to change the task"
			return m, nil
		}

		return m, m.loadTasks()
	}

	m.run = m.ctrl.Snapshot()

	return m, nil
}

func (m *Model) startBreak() {
	m.ctrl.Reset()

	if err := m.ctrl.SwitchKind(models.KindBreak); err != nil {
		m.status = err.Error()
		return
	}

	m.ctrl.Start()
}

// stepDuration moves to the next or previous selectable length.
func (m *Model) stepDuration(step int) {
	lengths := m.ctrl.Lengths(m.run.Kind)
	current := time.Duration(m.run.DurationSeconds) * time.Second

	i := slices.Index(lengths, current) + step
	if i < 0 || i >= len(lengths) {
		return
	}

	if err := m.ctrl.ChangeDuration(lengths[i]); err != nil {
		m.status = err.Error()
	}
}

func (m *Model) openTaskForm() tea.Cmd {
	opts := []huh.Option[string]{huh.NewOption("No task", noTaskOption)}

	for i := range m.tasks {
		opts = append(opts, huh.NewOption(m.tasks[i].Title, m.tasks[i].ID))
	}

	m.taskChoice = m.run.BoundTaskID

	m.taskForm = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What are you working on?").
				Options(opts...).
				Value(&m.taskChoice),
		),
	).WithShowHelp(false)

	return m.taskForm.Init()
}

func (m *Model) updateTaskForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "ctrl+c" {
		return m, tea.Quit
	}

	form, cmd := m.taskForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.taskForm = f
	}

	switch m.taskForm.State {
	case huh.StateCompleted:
		m.bindChoice()
		m.taskForm = nil
		m.run = m.ctrl.Snapshot()

		return m, nil
	case huh.StateAborted:
		m.taskForm = nil

		return m, nil
	}

	return m, cmd
}

func (m *Model) bindChoice() {
	if m.taskChoice == noTaskOption {
		m.binder.Unbind()
		return
	}

	for i := range m.tasks {
		if m.tasks[i].ID == m.taskChoice {
			m.binder.Bind(m.tasks[i])
			return
		}
	}
}

// formatTimeRemaining returns the remaining time formatted as "MM:SS".
func formatTimeRemaining(secs int) string {
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func (m *Model) headerView() string {
	var s strings.Builder

	if m.run.Kind == models.KindBreak {
		s.WriteString(m.styles.rest.Render())
	} else {
		s.WriteString(m.styles.focus.Render())
	}

	switch m.run.State {
	case StatePaused:
		s.WriteString(m.styles.secondary.Render("[Paused]"))
	case StateRunning:
		end := m.now().Add(time.Duration(m.run.RemainingSeconds) * time.Second)
		s.WriteString(m.styles.hint.Render("until " + end.Format(m.timeFormat)))
	case StateCompleted:
		s.WriteString(m.styles.secondary.Render("[Done]"))
	}

	if m.run.Kind == models.KindFocus {
		s.WriteString(m.styles.hint.Render(
			fmt.Sprintf(" (%d/%d)", m.run.SessionCount, m.run.MaxSessions),
		))
	}

	return s.String()
}

func (m *Model) timerView() string {
	var s strings.Builder

	s.WriteString(m.headerView())

	if m.run.BoundTaskLabel != "" {
		s.WriteString("\n" + m.styles.secondary.Render("Task: "+m.run.BoundTaskLabel))
	}

	var percent float64
	if m.run.DurationSeconds > 0 {
		percent = 1 - float64(m.run.RemainingSeconds)/float64(m.run.DurationSeconds)
	}

	s.WriteString("\n\n")
	s.WriteString(m.styles.main.Render(formatTimeRemaining(m.run.RemainingSeconds)))
	s.WriteString("\n\n")
	s.WriteString(m.progress.ViewAs(percent))
	s.WriteString("\n\n")
	summary := "Today: " + timeutil.FormatMinutes(m.todayMins) + " focused"
	if total, ok := m.cache.FocusTime(m.userID); ok {
		summary += ", " + timeutil.FormatMinutes(total) + " in total"
	}

	s.WriteString(m.styles.hint.Render(summary))

	return s.String()
}

func (m *Model) breakOfferView() string {
	var s strings.Builder

	s.WriteString(m.styles.main.Render("Your focus session is complete"))
	s.WriteString("\n\n" + m.styles.secondary.Render(
		"It's time to take a well-deserved break!",
	))
	s.WriteString("\n\n" + m.help.ShortHelpView([]key.Binding{
		m.keys.enter,
		m.keys.esc,
		m.keys.quit,
	}))

	return s.String()
}

func (m *Model) toastView() string {
	lines := make([]string, 0, len(m.run.Toasts))

	for _, t := range m.run.Toasts {
		style := m.styles.info
		if t.Level == ToastError {
			style = m.styles.err
		}

		lines = append(lines, style.Render(t.Title)+" "+m.styles.secondary.Render(t.Body))
	}

	if m.status != "" {
		lines = append(lines, m.styles.err.Render(m.status))
	}

	return strings.Join(lines, "\n")
}

func (m *Model) helpView() string {
	return m.help.ShortHelpView([]key.Binding{
		m.keys.togglePlay,
		m.keys.reset,
		m.keys.skip,
		m.keys.longer,
		m.keys.task,
		m.keys.takeBreak,
		m.keys.quit,
	})
}

func (m *Model) View() string {
	var view string

	switch {
	case m.taskForm != nil:
		view = m.timerView() + "\n\n" + m.taskForm.View()
	case m.breakOffer:
		view = m.breakOfferView()
	default:
		view = m.timerView() + "\n\n" + m.helpView()
	}

	if toasts := m.toastView(); toasts != "" {
		view += "\n\n" + toasts
	}

	return m.styles.base.Render(view)
}
