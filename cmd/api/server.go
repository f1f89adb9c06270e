package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"techstore-backend/pkg/container"
)

func Serve() {
	// ========================================
	// 1. BUILD DI CONTAINER
	// ========================================
	appContainer, err := container.NewContainer()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize container")
	}

	// Ensure cleanup on shutdown
	defer appContainer.Cleanup()

	// ========================================
	// 2. START QUEUE CONSUMER + SCHEDULER
	// ========================================
	// Task notification:deliver và session:sweep chạy trong process này
	// vì chỉ process này giữ session state.
	if err := appContainer.Queue.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start queue server")
	}
	if err := appContainer.Scheduler.RegisterSessionJobs(); err != nil {
		log.Fatal().Err(err).Msg("Failed to register scheduled jobs")
	}
	if err := appContainer.Scheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start scheduler")
	}

	// ========================================
	// 3. SETUP ROUTER
	// ========================================
	router := SetupRouter(appContainer)

	// ========================================
	// 4. CONFIGURE HTTP SERVER
	// ========================================
	port := appContainer.Config.App.Port
	srv := &http.Server{
		Addr:        fmt.Sprintf(":%s", port),
		Handler:     router,
		ReadTimeout: 10 * time.Second,
		// lớn hơn thời gian long-poll của chat
		WriteTimeout:   appContainer.Config.Chat.WaitTimeout + 10*time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// ========================================
	// 5. START SERVER (NON-BLOCKING)
	// ========================================
	go func() {
		log.Info().
			Str("port", port).
			Str("health", fmt.Sprintf("http://localhost:%s/api/v1/health", port)).
			Msg("Server starting")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// ========================================
	// 6. GRACEFUL SHUTDOWN
	// ========================================
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("Server forced to shutdown")
	}

	appContainer.Scheduler.Shutdown()
	appContainer.Queue.Shutdown()

	log.Info().Msg("Server exited gracefully")
}
