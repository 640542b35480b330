package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bumbolandia/bankd/internal/auth"
	"github.com/bumbolandia/bankd/internal/config"
	"github.com/bumbolandia/bankd/internal/ledger"
	"github.com/bumbolandia/bankd/internal/realtime"
	"github.com/bumbolandia/bankd/internal/server"
	"github.com/bumbolandia/bankd/internal/storage/memory"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func main() {
	loadLocalEnv()

	// Balances and amounts go over the wire as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	store := memory.NewStore()
	sessions := auth.NewRegistry(cfg.AdminCode)
	hub := realtime.NewHub()
	svc := ledger.New(store, sessions, hub)

	srv := server.New(cfg, svc, sessions, hub)

	go func() {
		log.Printf("Bumbolandia Bank running on %s", cfg.HTTPAddress())
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}
}
