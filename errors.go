package cubeplay

import "errors"

// Sentinel errors for the cubeplay package.
var (
	// Input errors
	ErrInvalidNotation = errors.New("cubeplay: invalid move notation")
	ErrInvalidSize     = errors.New("cubeplay: unsupported cube size")
	ErrUnknownTheme    = errors.New("cubeplay: unknown theme")
	ErrBadDifficulty   = errors.New("cubeplay: difficulty out of range")

	// State errors
	ErrStateMismatch = errors.New("cubeplay: saved game does not match the cube")
	ErrBusy          = errors.New("cubeplay: cube is busy")
	ErrNoStore       = errors.New("cubeplay: no store configured")
)
