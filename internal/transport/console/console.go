package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const emptyGlyph = "."

type round interface {
	Play(ctx context.Context, row, col int) (entity.Snapshot, error)
	Reset(ctx context.Context) entity.Snapshot
	Snapshot() entity.Snapshot
	Status() string
}

// Console is a line-oriented front end: "<row> <col>", "reset", "quit".
type Console struct {
	logger *slog.Logger
	round  round
}

func New(logger *slog.Logger, round round) *Console {
	return &Console{
		logger: logger.With("component", "console"),
		round:  round,
	}
}

// Run - reads commands from in until EOF, "quit" or ctx cancellation.
func (that *Console) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	if err := that.render(out, that.round.Snapshot()); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					if err != nil {
						return fmt.Errorf("failed to read input: %w", err)
					}
				default:
				}
				return nil
			}

			quit, err := that.handle(ctx, line, out)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		}
	}
}

func (that *Console) handle(ctx context.Context, line string, out io.Writer) (bool, error) {
	log := that.logger.With("method", "handle")

	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return false, nil
	}

	switch fields[0] {
	case "quit", "exit":
		return true, nil
	case "reset":
		return false, that.render(out, that.round.Reset(ctx))
	}

	row, col, err := parseMove(fields)
	if err != nil {
		log.Debug("bad command", "line", line, "error", err)
		return false, that.writeLine(out, "usage: <row> <col> | reset | quit")
	}

	snapshot, err := that.round.Play(ctx, row, col)
	switch {
	case errors.Is(err, apperror.ErrGameFinished):
		return false, that.writeLine(out, "game is over, type reset to play again")
	case errors.Is(err, apperror.ErrCellOccupied):
		return false, that.writeLine(out, "cell is already taken")
	case errors.Is(err, apperror.ErrInvalidCell):
		return false, that.writeLine(out, "row and col must be between 0 and 2")
	case err != nil:
		return false, fmt.Errorf("failed to play move: %w", err)
	}

	return false, that.render(out, snapshot)
}

func parseMove(fields []string) (int, int, error) {
	if len(fields) != 2 {
		return 0, 0, apperror.ErrUnknownCommand
	}

	row, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", apperror.ErrUnknownCommand, err)
	}

	col, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", apperror.ErrUnknownCommand, err)
	}

	return row, col, nil
}

func (that *Console) render(out io.Writer, snapshot entity.Snapshot) error {
	var sb strings.Builder
	for _, row := range snapshot.Board {
		glyphs := make([]string, 0, len(row))
		for _, cell := range row {
			if cell == entity.EmptyCell {
				glyphs = append(glyphs, emptyGlyph)
				continue
			}
			glyphs = append(glyphs, string(cell))
		}
		sb.WriteString(strings.Join(glyphs, " "))
		sb.WriteByte('\n')
	}
	sb.WriteString(that.round.Status())

	return that.writeLine(out, sb.String())
}

func (that *Console) writeLine(out io.Writer, text string) error {
	if _, err := fmt.Fprintln(out, text); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}
