package tictactoe

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

const abortedMessage = "The game was aborted"

type gameManager interface {
	Board() *entity.Board
	CurrentPlayer() entity.Mark
	MakeTurn(ctx context.Context, column, row int) (entity.Outcome, error)
	Abort(ctx context.Context)
}

// GameController runs the console turn loop on top of a game manager.
type GameController struct {
	logger  *slog.Logger
	manager gameManager

	in  io.Reader
	out io.Writer
}

func NewGameController(logger *slog.Logger, manager gameManager, in io.Reader, out io.Writer) *GameController {
	return &GameController{
		logger:  logger.With("component", "game_controller"),
		manager: manager,
		in:      in,
		out:     out,
	}
}

// Run - plays until the game finishes, the input ends or ctx is canceled.
// Invalid input never consumes a turn.
func (that *GameController) Run(ctx context.Context) (entity.Outcome, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := that.readLines(ctx)

	for {
		that.printf("%s\n", that.manager.Board())
		that.printf("%s:\n", that.manager.CurrentPlayer().PlayerName())

		var line string
		select {
		case <-ctx.Done():
			return that.abort(ctx)
		case next, ok := <-lines:
			if !ok {
				return that.abort(ctx)
			}
			line = next
		}

		column, row, err := ParseMove(line)
		if err != nil {
			that.printf("%s\n", err)
			continue
		}

		outcome, err := that.manager.MakeTurn(ctx, column, row)
		if err != nil {
			that.printf("%s\n", describe(err))
			continue
		}

		if outcome.Finished {
			that.printf("%s\n", that.manager.Board())
			that.printf("%s\n", outcome)
			return outcome, nil
		}
	}
}

// ParseMove - parses "column row" into zero-based coordinates.
func ParseMove(line string) (int, int, error) {
	args := strings.Fields(line)
	if len(args) != 2 {
		return 0, 0, apperror.ErrArgumentCount
	}

	column, columnErr := parseCoordinate("column", args[0])
	row, rowErr := parseCoordinate("row", args[1])

	var problems []string
	for _, err := range []error{columnErr, rowErr} {
		if err != nil {
			problems = append(problems, err.Error())
		}
	}

	if len(problems) > 0 {
		return 0, 0, fmt.Errorf("%w: %s", apperror.ErrInvalidNumber, strings.Join(problems, ", "))
	}

	return column, row, nil
}

func parseCoordinate(name, token string) (int, error) {
	value, err := strconv.ParseUint(token, 10, 32)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			err = numErr.Err
		}
		return 0, fmt.Errorf("%s %q: %w", name, token, err)
	}

	return int(value), nil
}

// describe strips the wrapping so players only see the rule they broke.
func describe(err error) string {
	for _, known := range []error{apperror.ErrOutOfBounds, apperror.ErrCellOccupied, apperror.ErrGameFinished} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}

	return err.Error()
}

// readLines - feeds input lines of any length until EOF, a read error or cancel.
func (that *GameController) readLines(ctx context.Context) <-chan string {
	lines := make(chan string)

	go func() {
		defer close(lines)

		reader := bufio.NewReader(that.in)
		for {
			line, err := reader.ReadString('\n')
			if line != "" {
				select {
				case lines <- strings.TrimRight(line, "\r\n"):
				case <-ctx.Done():
					return
				}
			}

			if errors.Is(err, io.EOF) {
				return
			}

			if err != nil {
				that.logger.Error("failed to read input", "error", err)
				return
			}
		}
	}()

	return lines
}

func (that *GameController) abort(ctx context.Context) (entity.Outcome, error) {
	that.printf("%s\n", abortedMessage)
	that.manager.Abort(context.WithoutCancel(ctx))

	return entity.Ongoing, apperror.ErrGameAborted
}

func (that *GameController) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(that.out, format, args...); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}
