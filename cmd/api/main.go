package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"pricing-backend/internal/server"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	srv, err := server.New(logger)
	if err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	go func() {
		logger.Info("server listening", zap.String("addr", srv.HTTP.Addr))
		if err := srv.HTTP.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.HTTP.Shutdown(ctx); err != nil {
		logger.Warn("server shutdown", zap.Error(err))
	}
	srv.Close()
	logger.Info("server exiting")
}
