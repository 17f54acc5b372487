package application

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/notify"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-engine/internal/transport/console"
	"github.com/rocketscienceinc/tictactoe-engine/internal/transport/redis"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

// RunApp - runs a console game on stdin/stdout until EOF, "quit" or a signal.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return Run(ctx, logger, conf, os.Stdin, os.Stdout)
}

// Run - wires the engine, the round and its notifiers to a console on in/out.
func Run(ctx context.Context, logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	hub := notify.NewHub()
	defer hub.Close()

	notifiers := []notify.Notifier{hub}

	if conf.Events.RedisEnabled {
		client, err := redis.NewClient(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis: %w", err)
		}

		defer func() {
			if err := client.Close(); err != nil {
				log.Error("could not close redis client", "error", err)
			}
		}()

		publisher, err := redis.NewPublisher(client, conf.Events.RedisChannel)
		if err != nil {
			return fmt.Errorf("could not create redis publisher: %w", err)
		}

		notifiers = append(notifiers, publisher)
		log.Info("Publishing events to redis", "channel", publisher.Channel())
	}

	events, unsubscribe := hub.Subscribe(conf.Events.BufferSize)
	defer unsubscribe()

	done := make(chan struct{})
	go func() {
		defer close(done)
		logEvents(logger, events)
	}()

	round := usecase.NewRound(logger, tictactoe.NewEngine(), notify.Multi(notifiers...))
	front := console.New(logger, round)

	log.Info("Starting game", "round", round.ID())

	err := front.Run(ctx, in, out)

	unsubscribe()
	<-done

	if err != nil {
		return fmt.Errorf("console error: %w", err)
	}

	log.Info("Game stopped", "dropped_events", hub.Dropped())

	return nil
}

func logEvents(logger *slog.Logger, events <-chan entity.Event) {
	log := logger.With("component", "events")

	for event := range events {
		log.Debug("round event",
			"round", event.RoundID,
			"type", event.Type,
			"player", event.Player,
			"status", event.Snapshot.Outcome.Kind,
		)
	}
}
