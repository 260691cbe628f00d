// Package audit records application-lifecycle events as structured JSON.
// It is separate from the request logger so the trail can be shipped and
// retained independently.
package audit

import (
	"context"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Event names
const (
	EventApplicationCreated = "application.created"
	EventStatusChanged      = "application.status_changed"
	EventResumeUploaded     = "profile.resume_uploaded"
	EventProfileSaved       = "profile.saved"
)

// Logger writes audit events with Zap.
type Logger struct {
	zap         *zap.Logger
	serviceName string
	environment string
}

// NewLogger builds a production-configured audit logger.
func NewLogger(serviceName, environment string) (*Logger, error) {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.MessageKey = "message"
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build()
	if err != nil {
		return nil, err
	}

	return &Logger{
		zap:         logger,
		serviceName: serviceName,
		environment: environment,
	}, nil
}

// Nop returns a logger that discards events; used in tests.
func Nop() *Logger {
	return &Logger{zap: zap.NewNop()}
}

// Event logs a named audit event with its subject and details.
func (l *Logger) Event(ctx context.Context, event, actorID string, fields ...zap.Field) {
	base := []zap.Field{
		zap.String("event", event),
		zap.String("actor_id", actorID),
		zap.String("service", l.serviceName),
		zap.String("environment", l.environment),
		zap.Time("at", time.Now().UTC()),
	}
	l.zap.Info(event, append(base, fields...)...)
}

// ApplicationCreated records a new application.
func (l *Logger) ApplicationCreated(ctx context.Context, candidateID string, jobID, applicationID int64) {
	l.Event(ctx, EventApplicationCreated, candidateID,
		zap.Int64("job_id", jobID),
		zap.Int64("application_id", applicationID),
	)
}

// StatusChanged records a status transition on an application.
func (l *Logger) StatusChanged(ctx context.Context, actorID string, applicationID int64, from, to string) {
	l.Event(ctx, EventStatusChanged, actorID,
		zap.Int64("application_id", applicationID),
		zap.String("from", from),
		zap.String("to", to),
	)
}

// ResumeUploaded records a stored resume object.
func (l *Logger) ResumeUploaded(ctx context.Context, userID, objectKey string, size int) {
	l.Event(ctx, EventResumeUploaded, userID,
		zap.String("object_key", objectKey),
		zap.Int("size_bytes", size),
	)
}

// ProfileSaved records a full or partial profile write.
func (l *Logger) ProfileSaved(ctx context.Context, userID string) {
	l.Event(ctx, EventProfileSaved, userID)
}

// Sync flushes buffered log entries.
func (l *Logger) Sync() error {
	return l.zap.Sync()
}
