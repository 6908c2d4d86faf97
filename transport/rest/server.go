package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// NewRouter - results may be nil when recording is disabled.
func NewRouter(logger *slog.Logger, rooms roomReader, results resultReader) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	handler := &roomHandler{
		logger:  logger.With("component", "rest"),
		rooms:   rooms,
		results: results,
	}

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/ping", pingHandler)
	router.GET("/rooms/:code", handler.getRoom)
	router.GET("/rooms/:code/results", handler.getResults)

	return router
}

// Start - serves the router until ctx is done.
func Start(ctx context.Context, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
