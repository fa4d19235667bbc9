// cubeplay - N×N×N twisty puzzle cubes in the terminal.
package main

import (
	"github.com/SeamusWaldron/cubeplay/internal/cli"
)

func main() {
	cli.Execute()
}
