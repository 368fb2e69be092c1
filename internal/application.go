package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-console/internal/config"
	"github.com/rocketscienceinc/tictactoe-console/internal/entity"
	"github.com/rocketscienceinc/tictactoe-console/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-console/internal/transport/redis"
	"github.com/rocketscienceinc/tictactoe-console/internal/usecase"
)

type publisher interface {
	Publish(ctx context.Context, event *entity.GameEvent) error
	Close() error
}

// RunApp - plays one game on in/out. An aborted game is not an error.
func RunApp(ctx context.Context, logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	eventPublisher, err := newPublisher(ctx, log, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = eventPublisher.Close(); err != nil {
			log.Error("could not close event publisher", "error", err)
		}
	}()

	gameManager := usecase.NewGameManager(logger, eventPublisher)
	gameController := tictactoe.NewGameController(logger, gameManager, in, out)

	log.Info("Starting game", "gameID", gameManager.GameID())

	outcome, err := gameController.Run(ctx)
	if errors.Is(err, apperror.ErrGameAborted) {
		log.Warn("Game aborted before an outcome was reached")
		return nil
	}

	if err != nil {
		return fmt.Errorf("game run failed: %w", err)
	}

	log.Info("Game over", "outcome", outcome.String())

	return nil
}

func newPublisher(ctx context.Context, log *slog.Logger, conf *config.Config) (publisher, error) {
	if !conf.Redis.Enabled {
		return redis.NopPublisher{}, nil
	}

	addr := conf.Redis.GetRedisAddr()
	client, err := redis.New(ctx, addr, conf.Redis.Channel)
	if err != nil {
		return nil, fmt.Errorf("could not connect to redis event feed: %w", err)
	}

	log.Info("Publishing game events", "addr", addr, "channel", client.Channel())

	return client, nil
}
