package entity

import "time"

// BoardSize is the fixed width and height of the board.
const BoardSize = 3

// Cell is the content of one square of the board.
type Cell string

const (
	EmptyCell Cell = ""
	MarkX     Cell = "X"
	MarkO     Cell = "O"
)

// Player is one of the two sides of a game.
type Player string

const (
	PlayerX Player = "X"
	PlayerO Player = "O"
)

// Mark - returns the cell value placed by the player.
func (that Player) Mark() Cell {
	return Cell(that)
}

// Opponent - returns the other player.
func (that Player) Opponent() Player {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// WinLines lists every row, column and diagonal as (row, col) triples.
var WinLines = [8][3][2]int{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Board is the 3x3 grid, row-major.
type Board [BoardSize][BoardSize]Cell

func (that *Board) InBounds(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

// HasLine - reports whether any row, column or diagonal holds three equal non-empty marks.
func (that *Board) HasLine() bool {
	for _, line := range WinLines {
		a := that[line[0][0]][line[0][1]]
		b := that[line[1][0]][line[1][1]]
		c := that[line[2][0]][line[2][1]]
		if a != EmptyCell && a == b && b == c {
			return true
		}
	}

	return false
}

func (that *Board) IsFull() bool {
	for _, row := range that {
		for _, cell := range row {
			if cell == EmptyCell {
				return false
			}
		}
	}

	return true
}

func (that *Board) Flat() [BoardSize * BoardSize]Cell {
	var flat [BoardSize * BoardSize]Cell
	for i, row := range that {
		copy(flat[i*BoardSize:], row[:])
	}

	return flat
}

type OutcomeKind string

const (
	OutcomeNone OutcomeKind = "none"
	OutcomeWin  OutcomeKind = "win"
	OutcomeDraw OutcomeKind = "draw"
)

// Outcome is derived from the board on demand and is never stored by the engine.
type Outcome struct {
	Kind   OutcomeKind `json:"kind"`
	Winner Player      `json:"winner,omitempty"`
}

func NoOutcome() Outcome {
	return Outcome{Kind: OutcomeNone}
}

func WinOutcome(player Player) Outcome {
	return Outcome{Kind: OutcomeWin, Winner: player}
}

func DrawOutcome() Outcome {
	return Outcome{Kind: OutcomeDraw}
}

func (that Outcome) IsTerminal() bool {
	return that.Kind == OutcomeWin || that.Kind == OutcomeDraw
}

// Snapshot is a read-only copy of the observable state of a round.
type Snapshot struct {
	Board         Board   `json:"board"`
	CurrentPlayer Player  `json:"current_player"`
	Outcome       Outcome `json:"outcome"`
	GameOver      bool    `json:"game_over"`
}

type EventType string

const (
	EventMove  EventType = "move"
	EventWin   EventType = "win"
	EventDraw  EventType = "draw"
	EventTurn  EventType = "turn"
	EventReset EventType = "reset"
)

// Event is emitted by a round after each state change.
type Event struct {
	RoundID   string    `json:"round_id"`
	Type      EventType `json:"type"`
	Row       int       `json:"row"`
	Col       int       `json:"col"`
	Player    Player    `json:"player,omitempty"`
	Snapshot  Snapshot  `json:"snapshot"`
	Timestamp time.Time `json:"timestamp"`
}
