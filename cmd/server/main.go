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

	httpapi "github.com/CloSpex/bomberman/internal/api/http"
	"github.com/CloSpex/bomberman/internal/api/ws"
	"github.com/CloSpex/bomberman/internal/config"
	"github.com/CloSpex/bomberman/internal/room"
	"github.com/CloSpex/bomberman/internal/store"

	// swagger packages
	_ "github.com/CloSpex/bomberman/docs"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// @title Grid Arena API
// @version 1.0
// @description REST and websocket API for the grid arena room engine (Go + Gin)
// @contact.name Backend Team
// @BasePath /
func main() {
	logger := log.New(os.Stdout, "arena ", log.LstdFlags|log.Lmicroseconds)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config: %v", err)
	}
	if !cfg.Server.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	mem := store.NewMemoryStore()
	rm := room.NewManager(mem, cfg, room.WithLogger(logger))
	hub := ws.NewHub(rm, logger)
	stats := room.NewStats()
	rm.Subscribe(room.BroadcastSink(hub))
	rm.Subscribe(room.LogSink(logger, cfg.Server.Debug))
	rm.Subscribe(stats)

	srv := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           httpapi.SetupRouter(rm, hub, stats),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return rm.Run(ctx) })
	g.Go(func() error {
		logger.Printf("listening on %s", cfg.Server.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Fatal(err)
	}
	logger.Printf("shut down, %d events dropped", rm.DroppedEvents())
}
