package events

import (
	"context"

	"go.uber.org/zap"

	"github.com/feral-file/ff-nft-registry/internal/logger"
)

// Sink receives the log lines of committed calls
//
//go:generate mockgen -source=sink.go -destination=../mocks/event_sink.go -package=mocks -mock_names=Sink=MockEventSink
type Sink interface {
	Write(ctx context.Context, line string)
}

type loggerSink struct{}

// NewLoggerSink returns a sink that writes each line through the service logger
func NewLoggerSink() Sink {
	return &loggerSink{}
}

func (s *loggerSink) Write(ctx context.Context, line string) {
	logger.InfoCtx(ctx, line, zap.String("log_type", "event"))
}
