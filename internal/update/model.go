package update

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sandeepkv93/taskfocus/internal/model"
	"github.com/sandeepkv93/taskfocus/internal/storage"
	"github.com/sandeepkv93/taskfocus/internal/store"
)

type View string

const (
	ViewTasks View = "Tasks"
	ViewFocus View = "Focus"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Palette string
	Help    string
	Quit    string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// FocusState mirrors the store's timer for the task shown in the focus view.
// It is refreshed from TimerSnapshot on every tick; the store stays the
// source of truth.
type FocusState struct {
	TaskID   string
	Timer    model.TimerSnapshot
	HasTimer bool
}

type Model struct {
	CurrentView    View
	SelectedTaskID string
	Query          string
	Focus          FocusState
	Palette        CommandPaletteState
	HelpVisible    bool
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error

	store  *store.Store
	cfg    RuntimeConfig
	logger *slog.Logger

	commandInput  textinput.Model
	focusProgress progress.Model
	helpModel     help.Model
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type FocusTickMsg struct{}

type ExportDoneMsg struct {
	Path   string
	Result storage.ExportResult
	Err    error
}

func NewModel(s *store.Store, cfg RuntimeConfig, logger *slog.Logger) Model {
	if s == nil {
		s = store.New()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultRuntimeConfig().TickInterval
	}
	m := Model{
		CurrentView: ViewTasks,
		Keys: GlobalKeyMap{
			Palette: "/",
			Help:    "?",
			Quit:    "q",
		},
		store:  s,
		cfg:    cfg,
		logger: logger,
	}
	m.initBubbleComponents()
	m.ensureSelection()
	return m
}

func (m *Model) initBubbleComponents() {
	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.Placeholder = "add <title> tags:a,b due:2026-01-02T15:04"
	m.commandInput.CharLimit = 512
	m.commandInput.Width = 52

	m.focusProgress = progress.New(progress.WithDefaultGradient(), progress.WithWidth(30))

	m.helpModel = help.New()
}
