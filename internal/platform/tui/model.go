package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/nestmaze/internal/config"
	"github.com/vovakirdan/nestmaze/internal/core"
	"github.com/vovakirdan/nestmaze/internal/game"
	"github.com/vovakirdan/nestmaze/internal/logging"
	"github.com/vovakirdan/nestmaze/internal/registry"
	"github.com/vovakirdan/nestmaze/internal/storage"
)

// helpRows is the footer reserved below the game view.
const helpRows = 1

// latchDuration is how long a held key stays active after its last repeat.
const latchDuration = 180 * time.Millisecond

// failer is implemented by games that can stop on an unrecoverable error.
type failer interface {
	Err() error
}

// statsReporter is implemented by games that summarize a session for the run log.
type statsReporter interface {
	Stats() game.Stats
}

// Model is the Bubble Tea model for running a maze session.
type Model struct {
	game    registry.Game
	screen  *core.Screen
	store   *storage.Store
	logger  *log.Logger
	painter *Painter
	config  core.RuntimeConfig
	keys    GameKeyMap
	help    help.Model
	latch   *KeyLatch
	edges   core.InputFrame
	state   core.GameState
	err     error

	quitOnBack bool
	blurPaused bool
	quitting   bool
	backToMenu bool
	runSaved   *bool // Shared across Model copies so a run is stored once
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) ModelOption {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithPainter sets the painter, e.g. one bound to an SSH session renderer.
func WithPainter(p *Painter) ModelOption {
	return func(m *Model) {
		if p != nil {
			m.painter = p
		}
	}
}

// WithBackToMenu makes esc return to the caller instead of quitting.
func WithBackToMenu() ModelOption {
	return func(m *Model) {
		m.quitOnBack = false
	}
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(g registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	saved := false
	m := Model{
		game:       g,
		store:      store,
		logger:     logging.Discard(),
		painter:    defaultPainter,
		config:     cfg,
		keys:       DefaultGameKeyMap(),
		help:       help.New(),
		latch:      NewKeyLatch(latchTicks(cfg.TickRate)),
		edges:      core.NewInputFrame(),
		quitOnBack: true,
		runSaved:   &saved,
	}
	for _, opt := range opts {
		opt(&m)
	}

	view := gameConfig(cfg)
	m.screen = core.NewScreen(view.ScreenW, view.ScreenH)
	m.help.Width = cfg.ScreenW
	return m
}

func latchTicks(tickRate int) int {
	return int(latchDuration * time.Duration(tickRate) / time.Second)
}

// gameConfig returns the runtime config of the game area above the footer.
func gameConfig(cfg core.RuntimeConfig) core.RuntimeConfig {
	cfg.ScreenH = max(cfg.ScreenH-helpRows, 1)
	return cfg
}

// Init initializes the model and starts the session.
func (m Model) Init() tea.Cmd {
	m.game.Reset(gameConfig(m.config))
	m.logger.Info("game started", "game", m.game.ID(), "seed", m.config.Seed)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.FocusMsg:
		// A pause the player chose survives the focus round trip
		if p, ok := m.game.(registry.Pausable); ok && m.blurPaused {
			p.Unpause()
		}
		m.blurPaused = false
		return m, nil

	case tea.BlurMsg:
		m.latch.Release()
		if p, ok := m.game.(registry.Pausable); ok && !m.game.State().Paused {
			p.Pause()
			m.blurPaused = true
		}
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.finish()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.finish()
		m.backToMenu = true
		if m.quitOnBack {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case key.Matches(msg, m.keys.Screenshot):
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "error", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	}

	action, held := m.keys.MapKey(msg)
	switch {
	case action == core.ActionNone:
	case held:
		m.latch.Press(action)
	default:
		m.edges.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	view := gameConfig(m.config)
	m.screen.Resize(view.ScreenW, view.ScreenH)
	m.help.Width = msg.Width

	// Sessions survive a resize when the game supports it
	if r, ok := m.game.(registry.Resizable); ok {
		r.Resize(view)
	} else {
		m.game.Reset(view)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	frame := m.edges.Clone()
	m.latch.Apply(&frame)

	result := m.game.Step(frame)
	m.state = result.State
	m.edges.Clear()

	if result.Transition != core.TransitionNone {
		m.logger.Debug("transition", "kind", result.Transition, "depth", result.State.Depth, "levels", result.State.Levels)
	}

	if f, ok := m.game.(failer); ok && f.Err() != nil {
		m.err = f.Err()
		m.finish()
		m.quitting = true
		return m, tea.Quit
	}

	return m, tickCmd(m.config.TickRate)
}

// finish stores the run once.
func (m *Model) finish() {
	if *m.runSaved {
		return
	}
	*m.runSaved = true

	sr, ok := m.game.(statsReporter)
	if !ok {
		return
	}
	st := sr.Stats()
	m.logger.Info("game ended", "game", m.game.ID(), "max_depth", st.MaxDepth, "descents", st.Descents, "elapsed", st.Elapsed.Round(time.Millisecond))

	if m.store == nil || st.Frames == 0 {
		return
	}
	run := storage.Run{
		Variant:  m.game.ID(),
		MaxDepth: st.MaxDepth,
		Levels:   st.Levels,
		Descents: st.Descents,
		Ascents:  st.Ascents,
		Denied:   st.Denied,
		Duration: st.Elapsed,
		Seed:     m.config.Seed,
	}
	if _, err := m.store.SaveRun(run); err != nil {
		m.logger.Warn("could not save run", "error", err)
	}
}

// saveScreenshot saves the current frame as plain text.
func (m *Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	dir := filepath.Join(config.HomeDir(), "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create %s: %w", dir, err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", err
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return m.painter.Render(m.screen) + "\n" + m.help.View(m.keys)
}

// Err returns the error that ended the session, if any.
func (m Model) Err() error {
	return m.err
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting && !m.backToMenu
}

// BackToMenu returns true if the user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last state reported by the game.
func (m Model) State() core.GameState {
	return m.state
}

// Run starts the Bubble Tea program for a single session.
func Run(g registry.Game, store *storage.Store, cfg core.RuntimeConfig, opts ...ModelOption) error {
	model := NewModel(g, store, cfg, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithReportFocus(),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.Err() != nil {
		return fmt.Errorf("session %s: %w", g.ID(), fm.Err())
	}
	return nil
}
