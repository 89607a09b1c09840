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

	"github.com/CharloYT/Timetable/internal/activity"
	"github.com/CharloYT/Timetable/internal/config"
	"github.com/CharloYT/Timetable/internal/customers"
	"github.com/CharloYT/Timetable/internal/httpx"
	kafkax "github.com/CharloYT/Timetable/internal/kafka"
	"github.com/CharloYT/Timetable/internal/orders"
	"github.com/CharloYT/Timetable/internal/postgres"
	"github.com/CharloYT/Timetable/internal/products"
	"github.com/CharloYT/Timetable/internal/redisx"
	"github.com/CharloYT/Timetable/internal/reports"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer feeding the activity-log worker
	prod := kafkax.NewProducer(cfg.KafkaBrokers, activity.Topic, 1024)
	prod.Start(ctx)
	recorder := &activity.KafkaRecorder{Producer: prod, Service: cfg.ServiceName}

	// Repos & services
	orderRepo := &orders.Repo{DB: db}
	orderSvc := &orders.Service{Store: orderRepo, Recorder: recorder}
	customerSvc := &customers.Service{Store: &customers.Repo{DB: db}, Recorder: recorder}

	router := httpx.NewRouter()
	(&httpx.OrdersHandler{Service: orderSvc, Statuses: orderRepo, Redis: rdb}).Register(router)
	(&httpx.CustomersHandler{Customers: customerSvc}).Register(router)
	(&httpx.ProductsHandler{Products: &products.Repo{DB: db}}).Register(router)
	(&httpx.DashboardHandler{Reports: &reports.Repo{DB: db}}).Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Printf("HTTP listening at %s", cfg.HTTPAddr)
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
	prod.Close() // stop intake, flush what is queued
	cancel()
	prod.WaitClosed()
}
