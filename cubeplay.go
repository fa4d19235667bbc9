// Package cubeplay is an interactive N×N×N twisty-puzzle engine.
//
// # Features
//
//   - Cubes from 2×2×2 to 5×5×5 on an explicit lattice model
//   - Drag gestures with flick detection, keyboard turns and scrambles
//   - Frame-driven animation with selectable easing presets
//   - Solve timer, saved games and per-size scores
//
// # Quick Start
//
// A Game owns the cube and its animation scheduler. The caller drives it
// with frame ticks and input events:
//
//	game, err := cubeplay.New(cubeplay.WithSize(3))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	game.OnSolved(func(r cubeplay.Result) {
//	    fmt.Println("Solved in", r.Duration)
//	})
//
//	if err := game.NewGame(); err != nil {
//	    log.Fatal(err)
//	}
//	for range time.Tick(16 * time.Millisecond) {
//	    game.Tick(16 * time.Millisecond)
//	}
//
// # Headless Use
//
// Notation can be applied without animation:
//
//	game.ApplyNotation("U R' F2")
//	game.ApplyNotation("F2 R U'")
//	fmt.Println("Solved:", game.Solved())
//
// Faces are U D L R F B. On cubes larger than 3×3×3 the lowercase letters
// turn the inner slab next to that face and uppercase turns the outer
// layer. A ' suffix reverses the turn and 2 makes it a half turn.
package cubeplay
