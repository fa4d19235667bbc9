// Package scramble generates random scrambles and converts face-turn
// notation into cube moves.
package scramble

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SeamusWaldron/cubeplay/internal/cube"
	"github.com/SeamusWaldron/cubeplay/internal/vecmath"
)

// ErrInvalidNotation is returned when a notation string cannot be parsed.
var ErrInvalidNotation = errors.New("scramble: invalid notation")

// Modifier is the suffix of a notation token.
type Modifier int

// Modifiers, written as no suffix, ' and 2.
const (
	Clockwise Modifier = iota
	Counterclockwise
	Half
)

// Modifiers lists the suffixes in generation order.
var Modifiers = [3]Modifier{Clockwise, Counterclockwise, Half}

func (m Modifier) String() string {
	switch m {
	case Counterclockwise:
		return "'"
	case Half:
		return "2"
	default:
		return ""
	}
}

// Token is one notation move such as R, u' or F2. Lowercase faces name the
// inner slab next to the face on cubes larger than 3x3x3.
type Token struct {
	Face     byte
	Modifier Modifier
}

func (t Token) String() string {
	return string(t.Face) + t.Modifier.String()
}

// Inverse returns the token that undoes t.
func (t Token) Inverse() Token {
	switch t.Modifier {
	case Clockwise:
		t.Modifier = Counterclockwise
	case Counterclockwise:
		t.Modifier = Clockwise
	}
	return t
}

func validFace(c byte) bool {
	return strings.IndexByte("UDLRFBudlrfb", c) >= 0
}

// ParseToken parses a single token.
func ParseToken(s string) (Token, error) {
	if len(s) == 0 || len(s) > 2 || !validFace(s[0]) {
		return Token{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}
	t := Token{Face: s[0]}
	if len(s) == 2 {
		switch s[1] {
		case '\'':
			t.Modifier = Counterclockwise
		case '2':
			t.Modifier = Half
		default:
			return Token{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
		}
	}
	return t, nil
}

// Sequence is an ordered list of tokens.
type Sequence []Token

// Parse splits a notation string on whitespace into tokens.
func Parse(notation string) (Sequence, error) {
	fields := strings.Fields(notation)
	seq := make(Sequence, 0, len(fields))
	for _, f := range fields {
		t, err := ParseToken(f)
		if err != nil {
			return nil, err
		}
		seq = append(seq, t)
	}
	return seq, nil
}

// MustParse is Parse for notation known to be valid. It panics otherwise.
func MustParse(notation string) Sequence {
	seq, err := Parse(notation)
	if err != nil {
		panic(err)
	}
	return seq
}

// Print joins the tokens with single spaces.
func (s Sequence) Print() string {
	parts := make([]string, len(s))
	for i, t := range s {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

func (s Sequence) String() string { return s.Print() }

// Inverse returns the sequence that undoes s.
func (s Sequence) Inverse() Sequence {
	inv := make(Sequence, len(s))
	for i, t := range s {
		inv[len(s)-1-i] = t.Inverse()
	}
	return inv
}

// Moves converts the sequence into quarter-turn moves for a cube of the
// given size. Half turns become two identical quarter turns.
func (s Sequence) Moves(size int) []cube.Move {
	moves := make([]cube.Move, 0, len(s)*2)
	for _, t := range s {
		m := ToMove(t, size)
		moves = append(moves, m)
		if t.Modifier == Half {
			moves = append(moves, m)
		}
	}
	return moves
}

// ToMove converts a token into a single quarter-turn move. A half-turn
// token yields one quarter of it; use Sequence.Moves for the full queue.
// It panics on a face letter outside UDLRFB.
func ToMove(t Token, size int) cube.Move {
	var axis vecmath.Axis
	var sign int
	switch t.Face {
	case 'U', 'u':
		axis, sign = vecmath.Y, 1
	case 'D', 'd':
		axis, sign = vecmath.Y, -1
	case 'R', 'r':
		axis, sign = vecmath.X, 1
	case 'L', 'l':
		axis, sign = vecmath.X, -1
	case 'F', 'f':
		axis, sign = vecmath.Z, 1
	case 'B', 'b':
		axis, sign = vecmath.Z, -1
	default:
		panic(fmt.Sprintf("scramble: unknown face %q", t.Face))
	}

	layer := sign
	if size > 3 && t.Face >= 'A' && t.Face <= 'Z' {
		layer *= 2
	}
	turns := -sign
	if t.Modifier == Counterclockwise {
		turns = -turns
	}
	return cube.Move{Axis: axis, Turns: turns, Layer: layer}
}

// faceLetters maps an axis and layer sign to the outer face letter.
var faceLetters = [3][2]byte{
	vecmath.X: {'L', 'R'},
	vecmath.Y: {'D', 'U'},
	vecmath.Z: {'B', 'F'},
}

var rotationLetters = [3]string{vecmath.X: "x", vecmath.Y: "y", vecmath.Z: "z"}

// Notate writes a move the way it would be typed. Whole-cube rotations use
// x, y and z. Moves with no face letter, such as middle slices, fall back to
// Move.String.
func Notate(m cube.Move, size int) string {
	suffix := func(cw bool) string {
		switch {
		case m.Turns == 2 || m.Turns == -2:
			return "2"
		case cw:
			return ""
		default:
			return "'"
		}
	}

	if m.Whole {
		return rotationLetters[m.Axis] + suffix(m.Turns < 0)
	}

	outer := size / 2
	if outer < 1 {
		outer = 1
	}
	abs, side := m.Layer, 1
	if abs < 0 {
		abs, side = -abs, 0
	}
	sign := 2*side - 1

	face := faceLetters[m.Axis][side]
	switch {
	case abs == outer:
	case size > 3 && abs == 1:
		face += 'a' - 'A'
	default:
		return m.String()
	}
	return string(face) + suffix(m.Turns == -sign)
}
