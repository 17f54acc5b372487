package suite

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
)

const (
	expireDuration  = 120
	maxWaitDuration = 120 * time.Second
)

const (
	redisPort  = "6379/tcp"
	redisImage = "redis"
	redisTag   = "alpine"
)

// Suite holds a Redis server running in a throwaway container.
type Suite struct {
	*testing.T
	Logger *slog.Logger

	Redis     *redis.Client
	RedisAddr string
}

// New - starts Redis in docker. Skipped in -short mode.
func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping docker-backed test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(cancel)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("could not connect to docker: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: redisImage,
		Tag:        redisTag,
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start resource: %v", err)
	}

	// hard kill even if cleanup never runs
	_ = resource.Expire(expireDuration)

	redisAddr := resource.GetHostPort(redisPort)

	// the server in the container may not accept connections yet
	pool.MaxWait = maxWaitDuration

	var client *redis.Client
	if err = pool.Retry(func() error {
		client = redis.NewClient(&redis.Options{Addr: redisAddr})
		return client.Ping(ctx).Err()
	}); err != nil {
		if purgeErr := pool.Purge(resource); purgeErr != nil {
			t.Fatalf("could not purge resource: %v", purgeErr)
		}

		t.Fatalf("could not connect to redis: %v", err)
	}

	t.Cleanup(func() {
		_ = client.Close()

		if err := pool.Purge(resource); err != nil {
			t.Errorf("could not purge resource: %v", err)
		}
	})

	return ctx, &Suite{
		T:         t,
		Logger:    logger,
		Redis:     client,
		RedisAddr: redisAddr,
	}
}

// Subscribe - subscribes to channel and waits for the subscription to be confirmed.
func (that *Suite) Subscribe(ctx context.Context, channel string) <-chan *redis.Message {
	that.Helper()

	pubsub := that.Redis.Subscribe(ctx, channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		that.Fatalf("could not subscribe to %s: %v", channel, err)
	}

	that.Cleanup(func() {
		_ = pubsub.Close()
	})

	return pubsub.Channel()
}
