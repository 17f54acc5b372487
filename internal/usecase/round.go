package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type engine interface {
	ApplyMove(row, col int) bool
	DetectWinner() (entity.Player, bool)
	IsBoardFull() bool
	SwitchPlayer()
	ResetGame()

	Board() entity.Board
	CurrentPlayer() entity.Player
	Cell(row, col int) (entity.Cell, bool)
}

type notifier interface {
	Notify(ctx context.Context, event entity.Event) error
}

// Round drives an engine through one game at a time and keeps the
// game-over, winner and draw flags the engine does not track.
type Round struct {
	logger   *slog.Logger
	engine   engine
	notifier notifier
	now      func() time.Time

	id       string
	gameOver bool
	winner   entity.Player
	draw     bool
}

// NewRound - creates a round over a fresh engine state. notifier may be nil.
func NewRound(logger *slog.Logger, engine engine, notifier notifier) *Round {
	return &Round{
		logger:   logger.With("component", "round"),
		engine:   engine,
		notifier: notifier,
		now:      time.Now,
		id:       uuid.NewString(),
	}
}

// Play - applies a move for the current player and advances the round.
func (that *Round) Play(ctx context.Context, row, col int) (entity.Snapshot, error) {
	log := that.logger.With("method", "Play", "round", that.id)

	if that.gameOver {
		return that.Snapshot(), apperror.ErrGameFinished
	}

	player := that.engine.CurrentPlayer()
	if !that.engine.ApplyMove(row, col) {
		return that.Snapshot(), that.rejection(row, col)
	}

	log.Debug("move applied", "player", player, "row", row, "col", col)
	that.publish(ctx, entity.EventMove, row, col, player)

	if winner, ok := that.engine.DetectWinner(); ok {
		that.gameOver = true
		that.winner = winner

		log.Info("round won", "winner", winner)
		that.publish(ctx, entity.EventWin, row, col, winner)

		return that.Snapshot(), nil
	}

	if that.engine.IsBoardFull() {
		that.gameOver = true
		that.draw = true

		log.Info("round drawn")
		that.publish(ctx, entity.EventDraw, row, col, "")

		return that.Snapshot(), nil
	}

	that.engine.SwitchPlayer()
	that.publish(ctx, entity.EventTurn, row, col, that.engine.CurrentPlayer())

	return that.Snapshot(), nil
}

// Reset - starts a new round with a new ID.
func (that *Round) Reset(ctx context.Context) entity.Snapshot {
	that.engine.ResetGame()

	that.gameOver = false
	that.winner = ""
	that.draw = false
	that.id = uuid.NewString()

	that.logger.Info("round reset", "round", that.id)
	that.publish(ctx, entity.EventReset, -1, -1, that.engine.CurrentPlayer())

	return that.Snapshot()
}

func (that *Round) Snapshot() entity.Snapshot {
	return entity.Snapshot{
		Board:         that.engine.Board(),
		CurrentPlayer: that.engine.CurrentPlayer(),
		Outcome:       that.Outcome(),
		GameOver:      that.gameOver,
	}
}

func (that *Round) Outcome() entity.Outcome {
	switch {
	case that.winner != "":
		return entity.WinOutcome(that.winner)
	case that.draw:
		return entity.DrawOutcome()
	default:
		return entity.NoOutcome()
	}
}

// Status - returns the line a front end shows under the board.
func (that *Round) Status() string {
	switch {
	case that.winner != "":
		return fmt.Sprintf("%s wins!", that.winner)
	case that.draw:
		return "It's a Draw!"
	default:
		return fmt.Sprintf("%s's turn", that.engine.CurrentPlayer())
	}
}

// CanPlay - reports whether (row, col) would currently accept a move.
func (that *Round) CanPlay(row, col int) bool {
	if that.gameOver {
		return false
	}

	cell, ok := that.engine.Cell(row, col)

	return ok && cell == entity.EmptyCell
}

func (that *Round) ID() string {
	return that.id
}

func (that *Round) IsOver() bool {
	return that.gameOver
}

func (that *Round) IsDraw() bool {
	return that.draw
}

func (that *Round) Winner() (entity.Player, bool) {
	return that.winner, that.winner != ""
}

func (that *Round) rejection(row, col int) error {
	if _, ok := that.engine.Cell(row, col); !ok {
		return fmt.Errorf("%w: row %d, col %d", apperror.ErrInvalidCell, row, col)
	}

	return fmt.Errorf("%w: row %d, col %d", apperror.ErrCellOccupied, row, col)
}

func (that *Round) publish(ctx context.Context, eventType entity.EventType, row, col int, player entity.Player) {
	if that.notifier == nil {
		return
	}

	event := entity.Event{
		RoundID:   that.id,
		Type:      eventType,
		Row:       row,
		Col:       col,
		Player:    player,
		Snapshot:  that.Snapshot(),
		Timestamp: that.now(),
	}

	if err := that.notifier.Notify(ctx, event); err != nil {
		that.logger.Error("failed to publish event", "type", eventType, "round", that.id, "error", err)
	}
}
