// Package middleware provides transport decorators for resq resources.
package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/broady/resq"
)

// LoggingTransport wraps a transport and logs each call using slog.
// It logs the start and settle of each call, including duration and either
// the response status or the transport error.
func LoggingTransport(next resq.Transport, logger *slog.Logger) resq.Transport {
	if logger == nil {
		logger = slog.Default()
	}
	return &loggingTransport{next: next, logger: logger}
}

type loggingTransport struct {
	next   resq.Transport
	logger *slog.Logger
}

func (t *loggingTransport) Do(ctx context.Context, req *resq.Request) (*resq.Response, error) {
	start := time.Now()

	t.logger.InfoContext(ctx, "call started",
		slog.String("method", req.Method),
		slog.String("url", req.URL),
	)

	res, err := t.next.Do(ctx, req)
	duration := time.Since(start)

	if err != nil {
		t.logger.ErrorContext(ctx, "call failed",
			slog.String("method", req.Method),
			slog.String("url", req.URL),
			slog.Duration("duration", duration),
			slog.Any("error", err),
		)
		return nil, err
	}

	t.logger.InfoContext(ctx, "call completed",
		slog.String("method", req.Method),
		slog.String("url", req.URL),
		slog.Duration("duration", duration),
		slog.Int("status", res.StatusCode),
	)
	return res, nil
}
