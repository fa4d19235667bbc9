package cubeplay

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/cubeplay/internal/anim"
	"github.com/SeamusWaldron/cubeplay/internal/controls"
	"github.com/SeamusWaldron/cubeplay/internal/cube"
	"github.com/SeamusWaldron/cubeplay/internal/raycast"
	"github.com/SeamusWaldron/cubeplay/internal/scramble"
	"github.com/SeamusWaldron/cubeplay/internal/storage"
	"github.com/SeamusWaldron/cubeplay/internal/theme"
	"github.com/SeamusWaldron/cubeplay/internal/vecmath"
)

// Store persists the game in progress and finished solves.
// *storage.Store implements it.
type Store interface {
	SaveGame(state cube.State, elapsed time.Duration, scramble string) error
	LoadGame() (*storage.SavedGame, error)
	ClearGame() error
	RecordSolve(s *storage.Solve, moves []storage.MoveRecord) (best bool, err error)
}

// Result describes a finished solve.
type Result struct {
	SolveID  string // empty without a store
	Size     int
	Duration time.Duration
	Moves    int
	Best     bool
}

// Game wires a cube to its controls, scheduler, scrambler, timer and store.
//
// All methods must be called from the goroutine that calls Tick.
type Game struct {
	cfg *config
	log logrus.FieldLogger

	sched     *anim.Scheduler
	camera    *raycast.Camera
	ray       *raycast.Raycaster
	scrambler *scramble.Scrambler
	timer     *anim.Timer
	theme     theme.Theme

	cube     *cube.Cube
	controls *controls.Controls

	scramble  scramble.Sequence
	playing   bool // a scrambled game is in progress
	newGame   bool // the timer starts on the first move
	startedAt time.Time
	moves     []storage.MoveRecord
	last      *Result

	onMove   func(cube.Move)
	onSolved func(Result)
}

// New creates a game with a solved cube. Controls start disabled; call
// Start, NewGame or Enable.
func New(opts ...Option) (*Game, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.size < cube.MinSize || cfg.size > cube.MaxSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, cfg.size)
	}
	if _, err := scramble.Length(cfg.size, cfg.difficulty); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadDifficulty, err)
	}
	th, err := theme.Get(cfg.theme)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, cfg.theme)
	}

	var sopts []scramble.Option
	if cfg.rng != nil {
		sopts = append(sopts, scramble.WithRand(cfg.rng))
	}

	g := &Game{
		cfg:       cfg,
		log:       cfg.log,
		sched:     anim.NewScheduler(),
		camera:    raycast.NewCamera(raycast.DefaultFOV, cfg.aspect),
		scrambler: scramble.New(sopts...),
		theme:     th,
	}
	g.ray = raycast.New(g.camera)
	g.timer = anim.NewTimer(g.sched, cfg.now)
	g.build(cfg.size)
	return g, nil
}

// build replaces the cube with a solved one of the given size.
func (g *Game) build(size int) {
	if g.controls != nil {
		g.controls.Cancel()
	}
	g.cube = cube.Generate(size)
	g.cube.Recolor(g.theme.Palette())
	g.controls = controls.New(g.cube, g.sched, g.ray,
		controls.WithThresholds(g.cfg.thresholds),
		controls.WithFeel(g.cfg.feel),
		controls.WithLogger(g.log.WithField("size", size)),
	)
	g.controls.OnMove = g.handleMove
	g.controls.OnSolved = g.handleSolved
	g.controls.OnSave = g.handleSave

	g.timer.Reset()
	g.scramble = nil
	g.playing = false
	g.newGame = false
	g.moves = nil
}

// Tick advances every animation by one frame.
func (g *Game) Tick(dt time.Duration) {
	g.sched.Tick(dt)
}

// Start resumes the saved game when there is one that fits the cube, and
// otherwise starts a new game. It reports whether a game was resumed.
func (g *Game) Start() (bool, error) {
	resumed, err := g.Resume()
	if err != nil && !errors.Is(err, ErrStateMismatch) {
		return false, err
	}
	if resumed {
		return true, nil
	}
	return false, g.NewGame()
}

// Resume restores the saved game. A saved game that does not fit the cube
// is discarded and ErrStateMismatch returned.
func (g *Game) Resume() (bool, error) {
	store := g.cfg.store
	if store == nil {
		return false, nil
	}
	saved, err := store.LoadGame()
	if err != nil {
		return false, fmt.Errorf("failed to load saved game: %w", err)
	}
	if saved == nil {
		return false, nil
	}

	if err := g.Restore(saved.State); err != nil {
		g.log.WithError(err).Warn("discarding saved game")
		if cerr := store.ClearGame(); cerr != nil {
			g.log.WithError(cerr).Warn("failed to clear saved game")
		}
		return false, err
	}

	seq, err := scramble.Parse(saved.Scramble)
	if err != nil {
		g.log.WithError(err).Warn("saved scramble is unreadable")
	}
	g.scramble = seq
	g.playing = true
	g.moves = nil
	g.timer.SetElapsed(saved.Elapsed)
	g.newGame = saved.Elapsed == 0
	if !g.newGame {
		g.startedAt = g.cfg.now().Add(-saved.Elapsed)
		g.timer.Start(true)
	}
	g.controls.Enable()
	g.log.WithFields(logrus.Fields{
		"size":    g.cube.Size(),
		"elapsed": saved.Elapsed,
	}).Info("resumed saved game")
	return true, nil
}

// Restore loads a serialized cube state. On mismatch the cube is left
// unchanged and ErrStateMismatch is returned.
func (g *Game) Restore(s cube.State) error {
	if s.Size != g.cube.Size() {
		return fmt.Errorf("%w: saved size %d, cube size %d", ErrStateMismatch, s.Size, g.cube.Size())
	}
	g.controls.Cancel()
	if err := g.cube.Restore(s); err != nil {
		return fmt.Errorf("%w: %w", ErrStateMismatch, err)
	}
	g.controls.Resync()
	return nil
}

// NewGame resets the cube and plays a freshly generated scramble. Controls
// are enabled once the scramble has finished.
func (g *Game) NewGame() error {
	seq, err := g.scrambler.Generate(g.cube.Size(), g.cfg.difficulty)
	if err != nil {
		return err
	}
	return g.play(seq)
}

// PlayScramble is NewGame with a given scramble.
func (g *Game) PlayScramble(notation string) error {
	seq, err := parseNotation(notation)
	if err != nil {
		return err
	}
	return g.play(seq)
}

func (g *Game) play(seq scramble.Sequence) error {
	g.build(g.cube.Size())
	g.scramble = seq
	g.playing = true
	g.newGame = true

	ok := g.controls.Scramble(seq.Moves(g.cube.Size()), func() {
		g.controls.Enable()
		g.log.WithFields(logrus.Fields{
			"size":     g.cube.Size(),
			"scramble": seq.Print(),
		}).Info("game started")
	})
	if !ok {
		return ErrBusy
	}
	return nil
}

// ApplyNotation applies moves instantly, without animation. The whole
// sequence is validated before the cube is touched.
func (g *Game) ApplyNotation(notation string) error {
	seq, err := parseNotation(notation)
	if err != nil {
		return err
	}
	if g.controls.Busy() {
		return ErrBusy
	}

	size := g.cube.Size()
	moves := seq.Moves(size)
	for _, m := range moves {
		if _, ok := cube.LayerIndex(size, m.Layer); !ok && !m.Whole {
			return fmt.Errorf("%w: %s has no layer %d on a %d cube", ErrInvalidNotation, seq.Print(), m.Layer, size)
		}
	}
	for _, m := range moves {
		if err := g.cube.Apply(m); err != nil {
			return fmt.Errorf("failed to apply %s: %w", m, err)
		}
	}
	g.controls.Resync()
	return nil
}

func parseNotation(notation string) (scramble.Sequence, error) {
	seq, err := scramble.Parse(notation)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidNotation, err)
	}
	return seq, nil
}

// Move animates a keyboard turn. It reports false while the controls are
// disabled or busy.
func (g *Game) Move(m cube.Move) bool {
	return g.controls.KeyboardMove(m)
}

// PointerDown starts a drag at p, in normalized device coordinates.
func (g *Game) PointerDown(p vecmath.Vec2) {
	g.controls.PointerDown(p, g.cfg.now())
}

// PointerMove continues a drag.
func (g *Game) PointerMove(p vecmath.Vec2) {
	g.controls.PointerMove(p, g.cfg.now())
}

// PointerUp releases a drag.
func (g *Game) PointerUp(p vecmath.Vec2) {
	g.controls.PointerUp(p, g.cfg.now())
}

// Save persists the game in progress.
func (g *Game) Save() error {
	if g.cfg.store == nil {
		return ErrNoStore
	}
	if err := g.cfg.store.SaveGame(g.cube.Serialize(), g.timer.Elapsed(), g.scramble.Print()); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}
	return nil
}

func (g *Game) handleMove(m cube.Move) {
	now := g.cfg.now()
	if g.playing {
		if g.newGame {
			g.newGame = false
			g.startedAt = now
			g.timer.Start(false)
		}
		g.moves = append(g.moves, storage.NewMoveRecord(len(g.moves), g.startedAt, now, m))
	}
	if g.onMove != nil {
		g.onMove(m)
	}
}

func (g *Game) handleSave() {
	if !g.playing || g.cfg.store == nil {
		return
	}
	if err := g.Save(); err != nil {
		g.log.WithError(err).Warn("failed to save game")
	}
}

func (g *Game) handleSolved() {
	if !g.playing {
		return
	}
	d := g.timer.Stop()
	g.playing = false
	g.controls.Disable()

	res := Result{Size: g.cube.Size(), Duration: d, Moves: len(g.moves)}
	if store := g.cfg.store; store != nil {
		if err := store.ClearGame(); err != nil {
			g.log.WithError(err).Warn("failed to clear saved game")
		}
		s := &storage.Solve{
			Size:         res.Size,
			StartedAt:    g.startedAt,
			EndedAt:      g.startedAt.Add(d),
			DurationMs:   d.Milliseconds(),
			ScrambleText: g.scramble.Print(),
		}
		best, err := store.RecordSolve(s, g.moves)
		if err != nil {
			g.log.WithError(err).Warn("failed to record solve")
		} else {
			res.Best = best
			res.SolveID = s.SolveID
		}
	}

	g.log.WithFields(logrus.Fields{
		"size":     res.Size,
		"duration": res.Duration,
		"moves":    res.Moves,
		"best":     res.Best,
	}).Info("cube solved")
	g.last = &res
	if g.onSolved != nil {
		g.onSolved(res)
	}
}

// OnMove registers a callback for every completed layer turn.
func (g *Game) OnMove(fn func(cube.Move)) {
	g.onMove = fn
}

// OnSolved registers a callback for a finished game.
func (g *Game) OnSolved(fn func(Result)) {
	g.onSolved = fn
}

// OnTimer registers a callback for when the displayed solve time changes.
func (g *Game) OnTimer(fn func(elapsed time.Duration, formatted string)) {
	g.timer.OnChange = fn
}

// SetSize regenerates the cube at a new size. Any game in progress is
// abandoned.
func (g *Game) SetSize(size int) error {
	if size < cube.MinSize || size > cube.MaxSize {
		return fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	g.cfg.size = size
	g.build(size)
	return nil
}

// SetFeel selects the animation feel (0-2).
func (g *Game) SetFeel(feel int) {
	g.controls.SetFeel(feel)
	g.cfg.feel = g.controls.Feel()
}

// SetDifficulty selects the scramble length for new games.
func (g *Game) SetDifficulty(d int) error {
	if _, err := scramble.Length(g.cube.Size(), d); err != nil {
		return fmt.Errorf("%w: %w", ErrBadDifficulty, err)
	}
	g.cfg.difficulty = d
	return nil
}

// SetTheme recolours the cube.
func (g *Game) SetTheme(name string) error {
	th, err := theme.Get(name)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	g.theme = th
	g.cfg.theme = name
	g.cube.Recolor(th.Palette())
	return nil
}

// SetAspect reframes the camera for a new viewport aspect ratio.
func (g *Game) SetAspect(aspect float64) {
	g.camera.Fit(aspect)
}

// Enable accepts gestures and keyboard turns outside a timed game.
func (g *Game) Enable() { g.controls.Enable() }

// Disable ignores gestures and keyboard turns.
func (g *Game) Disable() { g.controls.Disable() }

// Cube returns the cube model.
func (g *Game) Cube() *cube.Cube { return g.cube }

// Controls returns the gesture state machine.
func (g *Game) Controls() *controls.Controls { return g.controls }

// Camera returns the camera used for ray casting.
func (g *Game) Camera() *raycast.Camera { return g.camera }

// Scheduler returns the animation scheduler.
func (g *Game) Scheduler() *anim.Scheduler { return g.sched }

// Timer returns the solve timer.
func (g *Game) Timer() *anim.Timer { return g.timer }

// Theme returns the colour theme.
func (g *Game) Theme() theme.Theme { return g.theme }

// Size returns the cube size.
func (g *Game) Size() int { return g.cube.Size() }

// Feel returns the animation feel.
func (g *Game) Feel() int { return g.controls.Feel() }

// Difficulty returns the scramble difficulty.
func (g *Game) Difficulty() int { return g.cfg.difficulty }

// Scramble returns the scramble of the current game.
func (g *Game) Scramble() scramble.Sequence { return g.scramble }

// Playing reports whether a scrambled game is in progress.
func (g *Game) Playing() bool { return g.playing }

// Solved reports whether the cube is solved.
func (g *Game) Solved() bool { return g.cube.SolvedCheck() }

// Moves returns the moves made since the game's timer started.
func (g *Game) Moves() []cube.Move { return storage.ToMoves(g.moves) }

// LastResult returns the most recent solve, or nil.
func (g *Game) LastResult() *Result { return g.last }
