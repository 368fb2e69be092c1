package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
)

type eventPublisher interface {
	Publish(ctx context.Context, event *entity.GameEvent) error
}

// GameManager owns the board of a single game and whose turn it is.
type GameManager struct {
	logger    *slog.Logger
	publisher eventPublisher

	gameID string
	board  *entity.Board
	turn   entity.Mark
}

func NewGameManager(logger *slog.Logger, publisher eventPublisher) *GameManager {
	gameID := uuid.NewString()

	return &GameManager{
		logger:    logger.With("component", "game_manager", "gameID", gameID),
		publisher: publisher,

		gameID: gameID,
		board:  entity.NewBoard(),
		turn:   entity.MarkX,
	}
}

func (that *GameManager) GameID() string {
	return that.gameID
}

func (that *GameManager) Board() *entity.Board {
	return that.board
}

func (that *GameManager) CurrentPlayer() entity.Mark {
	return that.turn
}

// MakeTurn - places the current player's mark. The turn passes to the opponent
// only when the move is accepted and the game goes on.
func (that *GameManager) MakeTurn(ctx context.Context, column, row int) (entity.Outcome, error) {
	log := that.logger.With("method", "MakeTurn", "player", that.turn.String())

	outcome, err := that.board.Apply(that.turn, column, row)
	if err != nil {
		log.Debug("turn rejected", "column", column, "row", row, "error", err)
		return outcome, fmt.Errorf("failed make turn: %w", err)
	}

	event := entity.NewGameEvent(that.gameID, entity.EventTurn, that.board)
	event.Player = that.turn.String()
	event.Column, event.Row = column, row
	that.publish(ctx, event)

	if !outcome.Finished {
		that.turn = that.turn.Opponent()
		return outcome, nil
	}

	log.Info("game finished", "result", outcome.Result.String())

	event = entity.NewGameEvent(that.gameID, entity.EventFinished, that.board)
	event.Result = outcome.Result.String()
	that.publish(ctx, event)

	return outcome, nil
}

// Abort - announces that the game stopped before an outcome was reached.
func (that *GameManager) Abort(ctx context.Context) {
	that.logger.Warn("game aborted", "player", that.turn.String())

	event := entity.NewGameEvent(that.gameID, entity.EventAborted, that.board)
	event.Player = that.turn.String()
	that.publish(ctx, event)
}

func (that *GameManager) publish(ctx context.Context, event *entity.GameEvent) {
	if err := that.publisher.Publish(ctx, event); err != nil {
		that.logger.Error("failed to publish game event", "type", event.Type, "error", err)
	}
}
