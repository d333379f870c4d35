package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"logistics-sim/internal/logx"
	"logistics-sim/internal/sim"
)

// WorkerRunner runs the simulation loop and its ops side-server.
type WorkerRunner struct {
	runFn func(*dig.Container) error
}

// NewWorkerRunner returns a new WorkerRunner.
func NewWorkerRunner() *WorkerRunner {
	return &WorkerRunner{runFn: runWorker}
}

// MustRun drives the engine until cancellation. Cancellation is the
// normal way out; anything else panics.
func (r *WorkerRunner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	panic(err)
}

func runWorker(container *dig.Container) error {
	return container.Invoke(workerRun)
}

func workerRun(
	ctx context.Context,
	pool *pgxpool.Pool,
	logger logx.Logger,
	loop *sim.Loop,
	opsServer *http.Server,
) error {
	defer closeWorker(pool, logger, opsServer)

	go func() {
		logger.Info("ops server listening", logx.String("addr", opsServer.Addr))
		if err := opsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("ops server error", logx.Any("err", err))
		}
	}()

	logger.Info("logistics-sim started")
	return loop.Run(ctx)
}

func closeWorker(pool *pgxpool.Pool, logger logx.Logger, opsServer *http.Server) {
	shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := opsServer.Shutdown(shCtx); err != nil {
		logger.Error("ops server shutdown error", logx.Any("err", err))
	}
	if pool != nil {
		pool.Close()
	}
	logger.Info("logistics-sim stopped")
	_ = logger.Sync()
}
