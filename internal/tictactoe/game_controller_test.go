package tictactoe

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
	"github.com/rocketscienceinc/tictactoe-console/internal/usecase"
)

type recordingPublisher struct {
	events []*entity.GameEvent
}

func (that *recordingPublisher) Publish(_ context.Context, event *entity.GameEvent) error {
	that.events = append(that.events, event)
	return nil
}

type session struct {
	manager    *usecase.GameManager
	publisher  *recordingPublisher
	controller *GameController
	out        *bytes.Buffer
}

func newSession(in io.Reader) *session {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	publisher := &recordingPublisher{}
	manager := usecase.NewGameManager(logger, publisher)
	out := &bytes.Buffer{}

	return &session{
		manager:    manager,
		publisher:  publisher,
		controller: NewGameController(logger, manager, in, out),
		out:        out,
	}
}

func input(lines ...string) io.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func TestGameController_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("Player 1 wins on a row", func(t *testing.T) {
		// Given: X plays the top row while O plays in column 0
		s := newSession(input("0 0", "0 1", "1 0", "0 2", "2 0"))

		// When: the game is run
		outcome, err := s.controller.Run(ctx)

		// Then: Player 1 wins and the final board is shown before the result
		require.NoError(t, err)
		assert.Equal(t, entity.Finished(entity.ResultX), outcome)
		assert.True(t, strings.HasSuffix(s.out.String(), "X|X|X\n-+-+-\nO| | \n-+-+-\nO| | \n\nPlayer 1 wins!\n"))
	})

	t.Run("Player 2 wins on the anti diagonal", func(t *testing.T) {
		// Given: O fills (2,0), (1,1), (0,2)
		s := newSession(input("0 0", "2 0", "1 0", "1 1", "2 2", "0 2"))

		// When: the game is run
		outcome, err := s.controller.Run(ctx)

		// Then: Player 2 wins
		require.NoError(t, err)
		assert.Equal(t, entity.Finished(entity.ResultO), outcome)
		assert.True(t, strings.HasSuffix(s.out.String(), "Player 2 wins!\n"))
	})

	t.Run("Draw", func(t *testing.T) {
		// Given: a fill order that completes no line
		s := newSession(input("0 0", "1 0", "2 0", "1 1", "0 1", "2 1", "1 2", "0 2", "2 2"))

		// When: the game is run
		outcome, err := s.controller.Run(ctx)

		// Then: the game is a draw
		require.NoError(t, err)
		assert.Equal(t, entity.Finished(entity.ResultDraw), outcome)
		assert.True(t, strings.HasSuffix(s.out.String(), "The game was a draw\n"))
	})

	t.Run("Lines after the end of the game are ignored", func(t *testing.T) {
		// Given: more input than the game needs
		s := newSession(input("0 0", "0 1", "1 0", "0 2", "2 0", "2 2", "1 1"))

		// When: the game is run
		_, err := s.controller.Run(ctx)

		// Then: the board is untouched after the winning move
		require.NoError(t, err)
		assert.Equal(t, entity.EmptyCell, s.manager.Board().Cell(2, 2))
	})

	t.Run("Wrong number of arguments does not consume the turn", func(t *testing.T) {
		// Given: three tokens followed by a valid move
		s := newSession(input("1 1 1", "0 0"))

		// When: the game is run until the input ends
		_, err := s.controller.Run(ctx)

		// Then: the error is shown and Player 1 still made the valid move
		require.ErrorIs(t, err, apperror.ErrGameAborted)
		assert.Contains(t, s.out.String(), "incorrect number of arguments\n")
		assert.Equal(t, entity.CellX, s.manager.Board().Cell(0, 0))
		assert.Equal(t, entity.MarkO, s.manager.CurrentPlayer())
		assert.Equal(t, 2, strings.Count(s.out.String(), "Player 1:\n"))
	})

	t.Run("Line longer than 64 KiB does not end the game", func(t *testing.T) {
		// Given: an 80 KB line of tokens followed by a valid move
		s := newSession(input(strings.Repeat("1 ", 40*1024), "0 0"))

		// When: the game is run until the input ends
		_, err := s.controller.Run(ctx)

		// Then: the long line is rejected and Player 1 still places the mark
		require.ErrorIs(t, err, apperror.ErrGameAborted)
		assert.Contains(t, s.out.String(), "incorrect number of arguments\n")
		assert.Equal(t, 2, strings.Count(s.out.String(), "Player 1:\n"))
		assert.Equal(t, entity.CellX, s.manager.Board().Cell(0, 0))
		assert.Equal(t, entity.MarkO, s.manager.CurrentPlayer())
	})

	t.Run("Last line without a newline is still played", func(t *testing.T) {
		// Given: input whose final move has no trailing newline
		s := newSession(strings.NewReader("1 1\r\n0 0"))

		// When: the game is run
		_, err := s.controller.Run(ctx)

		// Then: both moves are placed before the input ends
		require.ErrorIs(t, err, apperror.ErrGameAborted)
		assert.Equal(t, entity.CellX, s.manager.Board().Cell(1, 1))
		assert.Equal(t, entity.CellO, s.manager.Board().Cell(0, 0))
	})

	t.Run("Non integer token prints the parse error", func(t *testing.T) {
		// Given: a letter instead of a column
		s := newSession(input("a 1"))

		// When: the game is run
		_, err := s.controller.Run(ctx)

		// Then: the parse error is shown and the board is unchanged
		require.ErrorIs(t, err, apperror.ErrGameAborted)
		assert.Contains(t, s.out.String(), "invalid number: column \"a\": invalid syntax\n")
		assert.Equal(t, entity.NewBoard().Cells, s.manager.Board().Cells)
		assert.Equal(t, entity.MarkX, s.manager.CurrentPlayer())
	})

	t.Run("Out of bounds move re-prompts the same player", func(t *testing.T) {
		// Given: X plays, then O plays outside the grid
		s := newSession(input("0 0", "3 1"))

		// When: the game is run
		_, err := s.controller.Run(ctx)

		// Then: the bounds message is shown and it is still O's turn
		require.ErrorIs(t, err, apperror.ErrGameAborted)
		assert.Contains(t, s.out.String(), apperror.ErrOutOfBounds.Error()+"\n")
		assert.Equal(t, entity.MarkO, s.manager.CurrentPlayer())
		assert.Equal(t, 2, strings.Count(s.out.String(), "Player 2:\n"))
	})

	t.Run("Occupied cell re-prompts the same player", func(t *testing.T) {
		// Given: O tries to overwrite X's mark
		s := newSession(input("1 1", "1 1"))

		// When: the game is run
		_, err := s.controller.Run(ctx)

		// Then: the occupied message is shown and X's mark stays
		require.ErrorIs(t, err, apperror.ErrGameAborted)
		assert.Contains(t, s.out.String(), apperror.ErrCellOccupied.Error()+"\n")
		assert.Equal(t, entity.CellX, s.manager.Board().Cell(1, 1))
		assert.Equal(t, entity.MarkO, s.manager.CurrentPlayer())
	})

	t.Run("End of input aborts the game", func(t *testing.T) {
		// Given: no input at all
		s := newSession(strings.NewReader(""))

		// When: the game is run
		outcome, err := s.controller.Run(ctx)

		// Then: the game is aborted after the first prompt
		require.ErrorIs(t, err, apperror.ErrGameAborted)
		assert.False(t, outcome.Finished)
		assert.Equal(t, " | | \n-+-+-\n | | \n-+-+-\n | | \n\nPlayer 1:\nThe game was aborted\n", s.out.String())

		require.Len(t, s.publisher.events, 1)
		assert.Equal(t, entity.EventAborted, s.publisher.events[0].Type)
	})

	t.Run("Canceled context aborts a blocked read", func(t *testing.T) {
		// Given: an input that never delivers a line
		reader, writer := io.Pipe()
		t.Cleanup(func() {
			_ = writer.Close()
		})
		s := newSession(reader)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		// When: the game is run
		_, err := s.controller.Run(ctx)

		// Then: the game is aborted
		require.ErrorIs(t, err, apperror.ErrGameAborted)
		assert.True(t, strings.HasSuffix(s.out.String(), "The game was aborted\n"))
	})

	t.Run("Events follow the game", func(t *testing.T) {
		// Given: a short winning game
		s := newSession(input("0 0", "1 0", "1 1", "2 0", "2 2"))

		// When: the game is run
		_, err := s.controller.Run(ctx)
		require.NoError(t, err)

		// Then: one turn event per move and a final finished event
		require.Len(t, s.publisher.events, 6)
		for _, event := range s.publisher.events[:5] {
			assert.Equal(t, entity.EventTurn, event.Type)
		}
		assert.Equal(t, entity.EventFinished, s.publisher.events[5].Type)
		assert.Equal(t, "X", s.publisher.events[5].Result)
	})
}

func TestParseMove(t *testing.T) {
	t.Run("Two integers", func(t *testing.T) {
		column, row, err := ParseMove("2 1")
		require.NoError(t, err)
		assert.Equal(t, 2, column)
		assert.Equal(t, 1, row)
	})

	t.Run("Extra whitespace is ignored", func(t *testing.T) {
		column, row, err := ParseMove("  0\t 2 \r")
		require.NoError(t, err)
		assert.Equal(t, 0, column)
		assert.Equal(t, 2, row)
	})

	t.Run("Large values parse and are left to the board", func(t *testing.T) {
		column, _, err := ParseMove("7 0")
		require.NoError(t, err)
		assert.Equal(t, 7, column)
	})

	t.Run("Wrong token count", func(t *testing.T) {
		for _, line := range []string{"", "1", "1 1 1"} {
			_, _, err := ParseMove(line)
			require.ErrorIs(t, err, apperror.ErrArgumentCount, "line %q", line)
		}
	})

	t.Run("Negative value", func(t *testing.T) {
		_, _, err := ParseMove("-1 0")
		require.ErrorIs(t, err, apperror.ErrInvalidNumber)
		assert.Equal(t, "invalid number: column \"-1\": invalid syntax", err.Error())
	})

	t.Run("Both tokens invalid", func(t *testing.T) {
		_, _, err := ParseMove("a b")
		require.ErrorIs(t, err, apperror.ErrInvalidNumber)
		assert.Equal(t, "invalid number: column \"a\": invalid syntax, row \"b\": invalid syntax", err.Error())
	})
}
