package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/CharloYT/Timetable/internal/activity"
	"github.com/CharloYT/Timetable/internal/config"
	kafkax "github.com/CharloYT/Timetable/internal/kafka"
	"github.com/CharloYT/Timetable/internal/postgres"
	"github.com/CharloYT/Timetable/internal/redisx"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	worker := &activity.Worker{
		Repo:  &activity.Repo{DB: db},
		Redis: rdb,
	}

	consumer := kafkax.NewConsumer(
		cfg.KafkaBrokers,
		getenv("ACTIVITY_GROUP", "activity-logger"),
		activity.Topic,
		mustAtoi(getenv("ACTIVITY_WORKERS", "8")),
	)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Println("shutting down...")
		cancel()
	}()

	log.Printf("activity-logger consuming %s", activity.Topic)
	if err := consumer.Start(ctx, worker.HandleEvent); err != nil {
		log.Fatalf("consumer: %v", err)
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func mustAtoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("bad integer %q: %v", s, err)
	}
	return n
}
