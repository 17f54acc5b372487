package tictactoe

import "github.com/rocketscienceinc/tictactoe-engine/internal/entity"

// Engine owns the board and the current player of a single game.
//
// It does not track whether the game is over: after a move the caller is
// expected to run DetectWinner, then IsBoardFull, then SwitchPlayer, and to
// stop issuing moves once a winner or a full board has been observed.
// An Engine must be driven by one goroutine at a time.
type Engine struct {
	board         entity.Board
	currentPlayer entity.Player
}

func NewEngine() *Engine {
	return &Engine{
		board:         entity.Board{},
		currentPlayer: entity.PlayerX,
	}
}

// ApplyMove - places the current player's mark on (row, col).
// Returns false without touching the board when the position is out of range or occupied.
func (that *Engine) ApplyMove(row, col int) bool {
	if !that.board.InBounds(row, col) {
		return false
	}

	if that.board[row][col] != entity.EmptyCell {
		return false
	}

	that.board[row][col] = that.currentPlayer.Mark()

	return true
}

// DetectWinner - reports the current player as the winner when any line is complete.
// The mark that fills the line is not inspected, so this must run right after the
// winning move and before SwitchPlayer.
func (that *Engine) DetectWinner() (entity.Player, bool) {
	if that.board.HasLine() {
		return that.currentPlayer, true
	}

	return "", false
}

func (that *Engine) IsBoardFull() bool {
	return that.board.IsFull()
}

// SwitchPlayer - toggles the current player. There is no game-over guard.
func (that *Engine) SwitchPlayer() {
	that.currentPlayer = that.currentPlayer.Opponent()
}

// ResetGame - replaces the whole state with a fresh game.
func (that *Engine) ResetGame() {
	*that = *NewEngine()
}

// Board - returns a copy of the board.
func (that *Engine) Board() entity.Board {
	return that.board
}

func (that *Engine) CurrentPlayer() entity.Player {
	return that.currentPlayer
}

// Cell - returns the content of (row, col) and whether the position is on the board.
func (that *Engine) Cell(row, col int) (entity.Cell, bool) {
	if !that.board.InBounds(row, col) {
		return entity.EmptyCell, false
	}

	return that.board[row][col], true
}
