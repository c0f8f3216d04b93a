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

	"transmux/internal/alerts"
	"transmux/internal/config"
	"transmux/internal/server"
	"transmux/internal/util"
)

func main() {
	godotenv.Load()
	config.Load()

	server.PrintBanner()
	util.CheckDependencies()
	util.EnsureScratchDir()
	util.StartSweepInterval()

	srv := server.New()

	go func() {
		log.Printf("Server listening on :%s", config.Port)
		alerts.ServerStarted()
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	alerts.ServerStopping()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
