package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTurn     = "turn"
	EventFinished = "finished"
	EventAborted  = "aborted"
)

// GameEvent is a notice about something that happened in a game.
type GameEvent struct {
	ID     string                        `json:"id"`
	GameID string                        `json:"game_id"`
	Type   string                        `json:"type"`
	Player string                        `json:"player,omitempty"`
	Column int                           `json:"column"`
	Row    int                           `json:"row"`
	Board  [BoardSize * BoardSize]string `json:"board"`
	Result string                        `json:"result,omitempty"`
	Time   time.Time                     `json:"time"`
}

func NewGameEvent(gameID, eventType string, board *Board) *GameEvent {
	return &GameEvent{
		ID:     uuid.NewString(),
		GameID: gameID,
		Type:   eventType,
		Board:  board.Snapshot(),
		Time:   time.Now().UTC(),
	}
}
