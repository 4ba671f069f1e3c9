package logger

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.Logger with recovery-service specific functionality
type Logger struct {
	*zap.Logger
	serviceName string
}

// ContextKey for request context values
type ContextKey string

const (
	RequestIDKey  ContextKey = "request_id"
	SessionKey    ContextKey = "session_id"
	TraceIDKey    ContextKey = "trace_id"
	AssessmentKey ContextKey = "assessment_id"
)

// New creates a new logger instance
func New(serviceName, environment string, debug bool) (*Logger, error) {
	var config zap.Config

	if environment == "production" {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if debug {
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	// Add service metadata
	config.InitialFields = map[string]interface{}{
		"service": serviceName,
		"env":     environment,
		"pid":     os.Getpid(),
	}

	zapLogger, err := config.Build(
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
	)
	if err != nil {
		return nil, err
	}

	return &Logger{
		Logger:      zapLogger,
		serviceName: serviceName,
	}, nil
}

// Named returns a named sub-logger
func (l *Logger) Named(name string) *Logger {
	return &Logger{
		Logger:      l.Logger.Named(name),
		serviceName: l.serviceName,
	}
}

// WithContext returns a logger with context values
func (l *Logger) WithContext(ctx context.Context) *Logger {
	fields := []zap.Field{}

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		fields = append(fields, zap.String("request_id", requestID))
	}
	if sessionID, ok := ctx.Value(SessionKey).(string); ok && sessionID != "" {
		fields = append(fields, zap.String("session_id", sessionID))
	}
	if traceID, ok := ctx.Value(TraceIDKey).(string); ok && traceID != "" {
		fields = append(fields, zap.String("trace_id", traceID))
	}
	if assessmentID, ok := ctx.Value(AssessmentKey).(string); ok && assessmentID != "" {
		fields = append(fields, zap.String("assessment_id", assessmentID))
	}

	return &Logger{
		Logger:      l.With(fields...),
		serviceName: l.serviceName,
	}
}

// WithAssessment returns a logger with assessment context
func (l *Logger) WithAssessment(assessmentID, borrower string) *Logger {
	return &Logger{
		Logger: l.With(
			zap.String("assessment_id", assessmentID),
			zap.String("borrower", borrower),
		),
		serviceName: l.serviceName,
	}
}

// AssessmentStarted logs the start of a risk assessment
func (l *Logger) AssessmentStarted(assessmentID, borrower string) {
	l.Info("assessment started",
		zap.String("assessment_id", assessmentID),
		zap.String("borrower", borrower),
	)
}

// AssessmentCompleted logs the completion of a risk assessment
func (l *Logger) AssessmentCompleted(assessmentID, category string, probability float64, durationMs int64) {
	l.Info("assessment completed",
		zap.String("assessment_id", assessmentID),
		zap.String("risk_category", category),
		zap.Float64("risk_probability", probability),
		zap.Int64("duration_ms", durationMs),
	)
}

// ValidationFailed logs a rejected borrower input
func (l *Logger) ValidationFailed(assessmentID string, err error) {
	l.Warn("borrower input rejected",
		zap.String("assessment_id", assessmentID),
		zap.Error(err),
	)
}

// ModelCallFailed logs a failed classifier query
func (l *Logger) ModelCallFailed(assessmentID string, err error) {
	l.Error("model inference failed",
		zap.String("assessment_id", assessmentID),
		zap.Error(err),
	)
}

// ExplanationSkipped logs that a feature-impact explanation was not produced
func (l *Logger) ExplanationSkipped(assessmentID string, err error) {
	l.Warn("feature impact explanation skipped",
		zap.String("assessment_id", assessmentID),
		zap.Error(err),
	)
}

// EventPublished logs an assessment event publication
func (l *Logger) EventPublished(assessmentID, topic string, partition int32, offset int64) {
	l.Info("assessment event published",
		zap.String("assessment_id", assessmentID),
		zap.String("topic", topic),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
	)
}

// LeadCaptured logs a stored contact lead
func (l *Logger) LeadCaptured(leadID, subject string) {
	l.Info("contact lead captured",
		zap.String("lead_id", leadID),
		zap.String("subject", subject),
	)
}

// LatencyWarning logs when a stage exceeds expected latency
func (l *Logger) LatencyWarning(stage string, durationMs, thresholdMs int64) {
	l.Warn("latency threshold exceeded",
		zap.String("stage", stage),
		zap.Int64("duration_ms", durationMs),
		zap.Int64("threshold_ms", thresholdMs),
	)
}

// Helper field functions

// ErrorField creates an error field
func ErrorField(err error) zap.Field {
	return zap.Error(err)
}

// DurationField creates a duration field
func DurationField(name string, d time.Duration) zap.Field {
	return zap.Duration(name, d)
}

// StringField creates a string field
func StringField(key, value string) zap.Field {
	return zap.String(key, value)
}

// IntField creates an int field
func IntField(key string, value int) zap.Field {
	return zap.Int(key, value)
}

// Float64Field creates a float64 field
func Float64Field(key string, value float64) zap.Field {
	return zap.Float64(key, value)
}
