// Package tui is the terminal front end: it drives a Game from bubbletea's
// frame ticks, mouse drags and key presses, and draws the cube by casting
// a ray per half-cell.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/cubeplay"
	"github.com/SeamusWaldron/cubeplay/internal/anim"
	"github.com/SeamusWaldron/cubeplay/internal/config"
	"github.com/SeamusWaldron/cubeplay/internal/cube"
	"github.com/SeamusWaldron/cubeplay/internal/scramble"
	"github.com/SeamusWaldron/cubeplay/internal/theme"
	"github.com/SeamusWaldron/cubeplay/internal/vecmath"
)

// FrameInterval is the target time between frames.
const FrameInterval = 16 * time.Millisecond

// maxFrame caps the time step after a stall.
const maxFrame = 100 * time.Millisecond

// chromeLines is the number of lines around the cube view.
const chromeLines = 3

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	timerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	solvedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Messages
type frameMsg time.Time

// Model is the bubbletea model for one game.
type Model struct {
	game  *cubeplay.Game
	prefs *config.StateFile
	log   logrus.FieldLogger

	width    int
	height   int
	lastTick time.Time
	dragging bool

	clock    string
	status   string
	result   *cubeplay.Result
	err      error
	quitting bool
}

// NewModel creates a model for g. prefs may be nil; when set, size, feel
// and theme changes are written back to it.
func NewModel(g *cubeplay.Game, prefs *config.StateFile, log logrus.FieldLogger) *Model {
	m := &Model{
		game:  g,
		prefs: prefs,
		log:   log,
		clock: anim.FormatClock(g.Timer().Elapsed()),
	}
	g.OnTimer(func(_ time.Duration, formatted string) {
		m.clock = formatted
	})
	g.OnSolved(func(r cubeplay.Result) {
		m.result = &r
		m.clock = anim.FormatClock(r.Duration)
		m.status = "solved"
		if r.Best {
			m.status = "solved, best time"
		}
	})
	g.OnMove(func(cube.Move) {
		m.result = nil
	})
	return m
}

// Run starts the program and blocks until the user quits.
func Run(g *cubeplay.Game, prefs *config.StateFile, log logrus.FieldLogger) error {
	p := tea.NewProgram(NewModel(g, prefs, log), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

func (m *Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(FrameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if rows := m.viewRows(); rows > 0 {
			m.game.SetAspect(float64(m.width) / float64(2*rows))
		}

	case frameMsg:
		now := time.Time(msg)
		dt := FrameInterval
		if !m.lastTick.IsZero() {
			dt = min(now.Sub(m.lastTick), maxFrame)
		}
		m.lastTick = now
		m.game.Tick(dt)
		return m, m.tickCmd()
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	switch key {
	case "q", "esc", "ctrl+c":
		m.quit()
		return tea.Quit

	case "s":
		m.setErr(m.game.NewGame())
		m.result = nil
		m.status = "scrambling"
		return nil

	case "n":
		m.setErr(m.game.SetSize(m.game.Size()))
		m.game.Enable()
		m.result = nil
		m.status = "free play"
		return nil

	case "2", "3", "4", "5":
		size := int(key[0] - '0')
		if err := m.game.SetSize(size); err != nil {
			m.setErr(err)
			return nil
		}
		m.game.Enable()
		m.status = fmt.Sprintf("%dx%dx%d", size, size, size)
		if m.prefs != nil {
			m.setErr(m.prefs.SetCubeSize(size))
		}
		return nil

	case "e":
		m.game.SetFeel((m.game.Feel() + 1) % 3)
		m.status = fmt.Sprintf("feel %d", m.game.Feel())
		if m.prefs != nil {
			m.setErr(m.prefs.SetFeel(m.game.Feel()))
		}
		return nil

	case "t":
		names := theme.Names()
		next := names[0]
		for i, n := range names {
			if n == m.game.Theme().Name {
				next = names[(i+1)%len(names)]
			}
		}
		m.setErr(m.game.SetTheme(next))
		m.status = "theme " + next
		if m.prefs != nil {
			m.setErr(m.prefs.SetTheme(next))
		}
		return nil
	}

	if mv, ok := KeyMove(key, m.game.Size()); ok {
		m.game.Move(mv)
	}
	return nil
}

// KeyMove maps a key to a move: u d l r f b turn the outer layer of that
// face, x y z rotate the whole cube like R, U and F, and shifted letters
// turn the other way.
func KeyMove(key string, size int) (cube.Move, bool) {
	if len(key) != 1 {
		return cube.Move{}, false
	}
	c := key[0]
	mod := scramble.Clockwise
	if c >= 'A' && c <= 'Z' {
		mod = scramble.Counterclockwise
		c += 'a' - 'A'
	}

	switch c {
	case 'u', 'd', 'l', 'r', 'f', 'b':
		face := c - ('a' - 'A')
		return scramble.ToMove(scramble.Token{Face: face, Modifier: mod}, size), true
	case 'x', 'y', 'z':
		face := map[byte]byte{'x': 'R', 'y': 'U', 'z': 'F'}[c]
		m := scramble.ToMove(scramble.Token{Face: face, Modifier: mod}, size)
		return cube.Move{Axis: m.Axis, Turns: m.Turns, Whole: true}, true
	}
	return cube.Move{}, false
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	rows := m.viewRows()
	if rows <= 0 || m.width <= 0 {
		return
	}
	p := CellNDC(msg.X, msg.Y-1, m.width, rows)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		m.dragging = true
		m.game.PointerDown(p)
	case tea.MouseActionMotion:
		if m.dragging {
			m.game.PointerMove(p)
		}
	case tea.MouseActionRelease:
		if m.dragging {
			m.dragging = false
			m.game.PointerUp(p)
		}
	}
}

// CellNDC maps the centre of terminal cell (x, y) of a view w cells wide
// and rows lines high to normalized device coordinates.
func CellNDC(x, y, w, rows int) vecmath.Vec2 {
	return PixelNDC(x, 2*y, w, 2*rows).Add(vecmath.V2(0, -1/float64(2*rows)))
}

func (m *Model) viewRows() int {
	return m.height - chromeLines
}

func (m *Model) setErr(err error) {
	m.err = err
	if err != nil {
		m.log.WithError(err).Warn("command failed")
	}
}

// quit saves a game in progress.
func (m *Model) quit() {
	m.quitting = true
	if !m.game.Playing() {
		return
	}
	if err := m.game.Save(); err != nil && !errors.Is(err, cubeplay.ErrNoStore) {
		m.log.WithError(err).Warn("failed to save game on quit")
	}
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width <= 0 || m.viewRows() <= 0 {
		return "Loading..."
	}

	var b strings.Builder

	size := m.game.Size()
	b.WriteString(titleStyle.Render(fmt.Sprintf("cubeplay %dx%dx%d", size, size, size)))
	b.WriteString("  ")
	b.WriteString(timerStyle.Render(m.clock))
	if m.result != nil {
		b.WriteString("  ")
		b.WriteString(solvedStyle.Render(fmt.Sprintf("%s in %d moves", m.status, m.result.Moves)))
	} else if m.status != "" {
		b.WriteString("  ")
		b.WriteString(statusStyle.Render(m.status))
	}
	b.WriteString("\n")

	g := m.game
	cv := Rasterize(g.Cube(), g.Camera(), g.Theme().Background, m.width, 2*m.viewRows())
	b.WriteString(cv.Render())
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}
	b.WriteString("\n")

	b.WriteString(helpStyle.Render("drag to turn | udlrfb xyz (shift reverses) | s=scramble n=free play 2-5=size e=feel t=theme q=quit"))
	return b.String()
}
