// meta/meta.go
package meta

// BOARD_SIZE is the default side length of the grid.
const BOARD_SIZE = 10

// SIZE_TO_WIN is the default number of marks in a line needed to win.
const SIZE_TO_WIN = 5

// DEPTH is the default search depth.
const DEPTH = 3

// RADIUS is the default neighborhood radius of candidate moves.
const RADIUS = 1

// GO_ROUTINES is the default number of games played in parallel by experiments.
const GO_ROUTINES = 8

// GAMES is the default number of games per experiment matchup.
const GAMES = 10

const OUTPUT_DIR = "results"
