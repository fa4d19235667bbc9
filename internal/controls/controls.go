// Package controls turns pointer drags, keyboard commands and scramble
// queues into animated layer turns and cube rotations.
//
// A drag starts in Preparing. Once it has moved far enough the rotation
// axis and the layer are fixed and the machine enters Rotating, where drag
// deltas rotate the layer directly. Releasing the pointer enters Animating:
// the rotation eases to a quarter turn chosen from the accumulated angle and
// the release momentum, and on completion the pieces are committed back to
// the lattice.
package controls

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SeamusWaldron/cubeplay/internal/anim"
	"github.com/SeamusWaldron/cubeplay/internal/cube"
	"github.com/SeamusWaldron/cubeplay/internal/raycast"
	"github.com/SeamusWaldron/cubeplay/internal/scene"
	"github.com/SeamusWaldron/cubeplay/internal/vecmath"
)

// Raycaster resolves a pointer position against scene nodes.
type Raycaster interface {
	CastRay(p vecmath.Vec2, candidates ...*scene.Node) (raycast.Hit, bool)
}

// DragSession is the state of one pointer gesture.
type DragSession struct {
	Type      FlipType
	Normal    vecmath.Vec3 // face normal in the cube frame; +z for cube flips
	Piece     int          // piece under the pointer, -1 for cube flips
	Current   vecmath.Vec3 // last pointer position on the helper plane
	Total     vecmath.Vec3 // accumulated drag on the helper plane
	Direction vecmath.Axis // main drag axis once committed
	Pointer   vecmath.Vec2

	momentum momentum
}

// flip is a rotation in progress.
type flip struct {
	typ   FlipType
	axis  vecmath.Vec3 // cube frame for layers, world frame for the cube
	coord int          // layer coordinate along the main axis of axis
	angle float64
}

// move converts a completed flip into the equivalent Move.
func (f *flip) move() cube.Move {
	a := vecmath.MainAxis(f.axis)
	turns := vecmath.QuarterTurns(f.angle)
	if f.axis.Get(a) < 0 {
		turns = -turns
	}
	return cube.Move{Axis: a, Turns: turns, Layer: f.coord, Whole: f.typ == CubeFlip}
}

// Controls is the gesture and move state machine for one cube.
// It is driven from the frame loop and is not safe for concurrent use.
type Controls struct {
	cube       *cube.Cube
	sched      *anim.Scheduler
	ray        Raycaster
	log        logrus.FieldLogger
	thresholds Thresholds
	feel       int

	state       State
	enabled     bool
	gettingDrag bool
	session     *DragSession
	active      *flip
	tween       *anim.Tween

	queue        []cube.Move
	scrambling   bool
	scrambleDone func()

	solved bool

	// OnMove fires after a layer turn by drag or keyboard completes with a
	// non-zero net rotation.
	OnMove func(cube.Move)
	// OnSolved fires when the cube becomes solved after a move.
	OnSolved func()
	// OnSave fires when the cube settles after a layer turn or a scramble
	// and should be persisted.
	OnSave func()
}

// New creates Controls for a cube. Controls start disabled.
func New(c *cube.Cube, s *anim.Scheduler, r Raycaster, opts ...Option) *Controls {
	ctl := &Controls{
		cube:       c,
		sched:      s,
		ray:        r,
		log:        discardLogger(),
		thresholds: DefaultThresholds(),
		solved:     c.SolvedCheck(),
	}
	for _, opt := range opts {
		opt(ctl)
	}
	return ctl
}

// State returns the current state.
func (c *Controls) State() State { return c.state }

// Session returns the active drag session, or nil.
func (c *Controls) Session() *DragSession { return c.session }

// Scrambling reports whether a scramble is playing.
func (c *Controls) Scrambling() bool { return c.scrambling }

// Enabled reports whether gestures and keyboard moves are accepted.
func (c *Controls) Enabled() bool { return c.enabled }

// Enable accepts gestures and keyboard moves.
func (c *Controls) Enable() { c.enabled = true }

// Disable ignores gestures and keyboard moves. A rotation already in
// progress still completes.
func (c *Controls) Disable() { c.enabled = false }

// Feel returns the animation feel.
func (c *Controls) Feel() int { return c.feel }

// SetFeel selects the animation feel, clamped to 0-2.
func (c *Controls) SetFeel(feel int) {
	c.feel = min(max(feel, FeelSnappy), FeelBouncy)
}

// Thresholds returns the gesture thresholds in use.
func (c *Controls) Thresholds() Thresholds { return c.thresholds }

// Solved returns the last known solved state.
func (c *Controls) Solved() bool { return c.solved }

// Resync re-reads the solved state from the cube without firing OnSolved.
// Call it after the cube is restored or regenerated.
func (c *Controls) Resync() {
	c.solved = c.cube.SolvedCheck()
}

// PointerDown starts a gesture at p, given in normalized device
// coordinates.
func (c *Controls) PointerDown(p vecmath.Vec2, now time.Time) {
	if !c.enabled || c.scrambling {
		return
	}
	if c.state == Preparing || c.state == Rotating {
		return
	}
	c.gettingDrag = c.state == Animating

	sess := &DragSession{Piece: -1, Pointer: p, momentum: momentum{window: c.thresholds.Window}}

	edgeHit, onEdges := c.ray.CastRay(p, c.cube.Edges)
	var pieceHit raycast.Hit
	onPiece := false
	if onEdges {
		pieceHit, onPiece = c.ray.CastRay(p, c.cube.PieceNodes()...)
	}

	helper := c.cube.Helper
	if onEdges && onPiece {
		sess.Type = LayerFlip
		sess.Normal = vecmath.RoundToAxis(edgeHit.Normal)
		if piece, ok := c.cube.PieceByNode(pieceHit.Node); ok {
			sess.Piece = piece.ID
		}

		c.cube.Edges.Attach(helper)
		helper.Local = vecmath.Identity()
		helper.LookAt(sess.Normal)
		helper.TranslateZ(0.5)
		c.cube.Root.Attach(helper)
	} else {
		sess.Type = CubeFlip
		sess.Normal = vecmath.Z.Unit()

		helper.Local = vecmath.Identity()
		helper.Local.Rotation = vecmath.AxisAngle(vecmath.Y.Unit(), vecmath.QuarterTurn/2)
	}

	planeHit, ok := c.ray.CastRay(p, helper)
	if !ok {
		return
	}
	sess.Current = helper.WorldToLocal(planeHit.Point)
	c.session = sess
	if c.state == Still {
		c.state = Preparing
	}
	c.log.WithFields(logrus.Fields{"type": sess.Type, "piece": sess.Piece}).Debug("drag started")
}

// PointerMove feeds a drag sample.
func (c *Controls) PointerMove(p vecmath.Vec2, now time.Time) {
	if c.scrambling || c.session == nil {
		return
	}
	if c.state == Still || (c.state == Animating && !c.gettingDrag) {
		return
	}

	sess := c.session
	helper := c.cube.Helper
	planeHit, ok := c.ray.CastRay(p, helper)
	if !ok {
		return
	}
	point := helper.WorldToLocal(planeHit.Point)
	delta := point.Sub(sess.Current)
	delta.Z = 0
	sess.Total = sess.Total.Add(delta)
	sess.Current = point
	sess.Pointer = p
	sess.momentum.add(delta, now)

	switch {
	case c.state == Preparing && sess.Total.Len() > c.thresholds.Drag:
		c.commitAxis(sess)
	case c.state == Rotating && c.active != nil:
		c.rotate(c.active, delta.Get(sess.Direction))
	}
}

// commitAxis fixes the rotation axis from the drag so far and enters
// Rotating.
func (c *Controls) commitAxis(sess *DragSession) {
	sess.Direction = vecmath.MainAxis(sess.Total)
	f := &flip{typ: sess.Type}

	if sess.Type == LayerFlip {
		world := c.cube.Helper.LocalToWorldDir(sess.Direction.Unit())
		inCube := c.cube.Edges.WorldToLocalDir(world).Normalize().Round()
		f.axis = inCube.Cross(sess.Normal).Negate()

		a := vecmath.MainAxis(f.axis)
		piece := sess.Piece
		if piece < 0 {
			piece = 0
		}
		f.coord = c.cube.LayerOf(piece, a)
		c.cube.Select(c.cube.QueryLayer(a, f.coord))
	} else {
		var a vecmath.Axis
		switch {
		case sess.Direction == vecmath.X:
			a = vecmath.Y
		case sess.Pointer.X > 0:
			a = vecmath.Z
		default:
			a = vecmath.X
		}
		f.axis = a.Unit()
		if a == vecmath.X {
			f.axis = f.axis.Negate()
		}
	}

	c.active = f
	c.state = Rotating
	c.log.WithFields(logrus.Fields{
		"type":  f.typ,
		"axis":  vecmath.MainAxis(f.axis),
		"layer": f.coord,
	}).Debug("axis committed")
}

// PointerUp ends a gesture.
func (c *Controls) PointerUp(p vecmath.Vec2, now time.Time) {
	if c.scrambling {
		return
	}
	if c.state != Rotating || c.session == nil || c.active == nil {
		c.gettingDrag = false
		c.session = nil
		if c.state != Animating {
			c.state = Still
		}
		return
	}

	sess := c.session
	f := c.active
	c.session = nil
	c.state = Animating

	m := sess.momentum.value(now).Get(sess.Direction)
	target := SnapTarget(f.angle, m, c.thresholds)
	c.log.WithFields(logrus.Fields{
		"angle":    vecmath.Degrees(f.angle),
		"momentum": m,
		"target":   vecmath.Degrees(target),
	}).Debug("drag released")

	c.animate(f, target-f.angle, c.feel, func() {
		if f.typ == LayerFlip {
			c.save()
		}
		c.settle()
		if f.typ == LayerFlip {
			c.checkSolved()
		}
	})
}

// settle returns to Still, or straight to Preparing when a new pointer-down
// arrived during the animation.
func (c *Controls) settle() {
	if c.gettingDrag && c.session != nil {
		c.state = Preparing
	} else {
		c.state = Still
		c.session = nil
	}
	c.gettingDrag = false
}

// rotate applies an incremental rotation to the active layer or the cube.
func (c *Controls) rotate(f *flip, angle float64) {
	if f.typ == LayerFlip {
		c.cube.Group.RotateOnAxis(f.axis, angle)
	} else {
		c.cube.Edges.RotateOnWorldAxis(f.axis, angle)
		c.cube.Object.Local.Rotation = c.cube.Edges.Local.Rotation
	}
	f.angle += angle
}

// animate eases f by delta radians and commits the result.
func (c *Controls) animate(f *flip, delta float64, feel int, done func()) {
	preset := LayerPresets[feel]
	if f.typ == CubeFlip {
		preset = CubePresets[feel]
	}
	c.tween = anim.NewTween(c.sched, anim.TweenOptions{
		Duration: preset.Duration,
		Easing:   preset.Easing,
		OnUpdate: func(tw *anim.Tween) {
			if d := tw.Delta() * delta; d != 0 {
				c.rotate(f, d)
			}
		},
		OnComplete: func(*anim.Tween) {
			c.tween = nil
			c.active = nil
			c.finish(f)
			done()
		},
	})
}

// finish snaps a completed flip onto the lattice and reports the move.
func (c *Controls) finish(f *flip) {
	m := f.move()
	if f.typ == CubeFlip {
		c.cube.Edges.Local.Rotation = c.cube.Edges.Local.Rotation.Snap()
		c.cube.Object.Local.Rotation = c.cube.Edges.Local.Rotation
		c.log.WithFields(logrus.Fields{"axis": m.Axis, "turns": m.Turns}).Debug("cube rotated")
		return
	}

	c.cube.Object.Local.Rotation = c.cube.Object.Local.Rotation.Snap()
	c.cube.Commit()
	c.log.WithFields(logrus.Fields{"axis": m.Axis, "layer": m.Layer, "turns": m.Turns}).Debug("layer turned")
	if !c.scrambling && m.Turns%4 != 0 && c.OnMove != nil {
		c.OnMove(m)
	}
}

func (c *Controls) save() {
	if c.OnSave != nil {
		c.OnSave()
	}
}

// checkSolved fires OnSolved when the cube has just become solved.
func (c *Controls) checkSolved() {
	solved := c.cube.SolvedCheck()
	if solved && !c.solved {
		c.log.Info("cube solved")
		if c.OnSolved != nil {
			c.OnSolved()
		}
	}
	c.solved = solved
}

// KeyboardMove animates a layer turn or cube rotation. It is ignored unless
// the controls are enabled and Still, and reports whether it started.
func (c *Controls) KeyboardMove(m cube.Move) bool {
	if !c.enabled || c.state != Still || c.scrambling {
		return false
	}
	f := c.start(m)
	if f == nil {
		return false
	}
	c.animate(f, m.Angle(), c.feel, func() {
		if f.typ == LayerFlip {
			c.save()
		}
		c.state = Still
		if f.typ == LayerFlip {
			c.checkSolved()
		}
	})
	return true
}

// start prepares a flip for a programmatic move and enters Rotating.
func (c *Controls) start(m cube.Move) *flip {
	f := &flip{typ: LayerFlip, axis: m.Axis.Unit(), coord: m.Layer}
	if m.Whole {
		f.typ = CubeFlip
	} else {
		if _, ok := cube.LayerIndex(c.cube.Size(), m.Layer); !ok {
			c.log.WithField("move", m.String()).Warn("ignoring move on a missing layer")
			return nil
		}
		c.cube.Select(c.cube.QueryLayer(m.Axis, m.Layer))
	}
	c.active = f
	c.state = Rotating
	return f
}

// Scramble plays moves back to back with the snappiest feel. done runs once
// the queue is empty. It reports false if the controls are busy.
func (c *Controls) Scramble(moves []cube.Move, done func()) bool {
	if c.scrambling || c.state != Still {
		return false
	}
	c.scrambling = true
	c.scrambleDone = done
	c.queue = append([]cube.Move(nil), moves...)
	c.log.WithField("moves", len(moves)).Info("scramble started")
	c.nextScrambleMove()
	return true
}

func (c *Controls) nextScrambleMove() {
	for len(c.queue) > 0 {
		m := c.queue[0]
		c.queue = c.queue[1:]
		f := c.start(m)
		if f == nil {
			continue
		}
		c.animate(f, m.Angle(), FeelSnappy, c.nextScrambleMove)
		return
	}

	c.scrambling = false
	c.state = Still
	c.solved = c.cube.SolvedCheck()
	c.save()
	c.log.Info("scramble finished")
	if done := c.scrambleDone; done != nil {
		c.scrambleDone = nil
		done()
	}
}

// Busy reports whether a rotation is in progress.
func (c *Controls) Busy() bool {
	return c.tween != nil || c.state != Still || c.scrambling
}

// Cancel stops any animation and scramble, commits the cube to the nearest
// lattice state and returns to Still. It is used before regenerating or
// restoring the cube.
func (c *Controls) Cancel() {
	if c.tween != nil {
		c.tween.Stop()
		c.tween = nil
	}
	if f := c.active; f != nil {
		if f.typ == CubeFlip {
			c.cube.Edges.Local.Rotation = c.cube.Edges.Local.Rotation.Snap()
			c.cube.Object.Local.Rotation = c.cube.Edges.Local.Rotation
		} else {
			c.cube.Commit()
		}
	}
	c.active = nil
	c.session = nil
	c.queue = nil
	c.scrambling = false
	c.scrambleDone = nil
	c.gettingDrag = false
	c.state = Still
	c.solved = c.cube.SolvedCheck()
}

// angleEpsilon is the tolerance used when comparing accumulated angles.
const angleEpsilon = 1e-9

// ActiveAngle returns the accumulated angle of the rotation in progress.
func (c *Controls) ActiveAngle() float64 {
	if c.active == nil {
		return 0
	}
	if math.Abs(c.active.angle) < angleEpsilon {
		return 0
	}
	return c.active.angle
}
