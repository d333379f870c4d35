package app

import (
	"log/slog"
	"os"

	"github.com/google/uuid"

	"logistics-sim/internal/logx"
)

// NewLogger builds the engine's JSON logger with a per-process run id,
// so overlapping log streams from restarts stay distinguishable.
func NewLogger() logx.Logger {
	base := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	return logx.NewSlogAdapter(base).With(logx.String("run_id", uuid.NewString()))
}
