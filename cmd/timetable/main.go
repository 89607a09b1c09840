package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/CharloYT/Timetable/internal/config"
	"github.com/CharloYT/Timetable/internal/httpx"
	"github.com/CharloYT/Timetable/internal/postgres"
	"github.com/CharloYT/Timetable/internal/timetable"
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

	router := httpx.NewRouter()
	(&httpx.TimetableHandler{Repo: &timetable.Repo{DB: db}}).Register(router)

	srv := &http.Server{Addr: cfg.TimetableAddr, Handler: router}

	go func() {
		log.Printf("timetable HTTP listening at %s", cfg.TimetableAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
}
