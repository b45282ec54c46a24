package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/humanbelnik/jukebox/internal/infra/s3mock"
)

func main() {
	addr := getEnv("MOCK_S3_ADDR", ":9090")
	bucket := getEnv("ARCHIVE_BUCKET", "jukebox-results")

	server := &http.Server{
		Addr:    addr,
		Handler: s3mock.NewServer(bucket),
	}

	go func() {
		log.Printf("Mock S3 server starting on %s, bucket %s", addr, bucket)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Mock S3 server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down Mock S3 server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(ctx)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
