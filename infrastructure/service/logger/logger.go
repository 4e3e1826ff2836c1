package logger

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

type ctxKey string

// CorrelationIDKey is where the correlation middleware stores the request's
// correlation ID; every log line emitted with that context carries it.
const CorrelationIDKey ctxKey = "correlation_id"

// Logger is the structured logging contract used across the service.
type Logger interface {
	Debug(ctx context.Context, message string, fields map[string]interface{})
	Info(ctx context.Context, message string, fields map[string]interface{})
	Warn(ctx context.Context, message string, fields map[string]interface{})
	Error(ctx context.Context, message string, err error, fields map[string]interface{})
	WithFields(fields map[string]interface{}) Logger
}

type Config struct {
	Level       string
	Format      string // json or text
	ServiceName string
}

type logrusLogger struct {
	logger *logrus.Logger
	fields map[string]interface{}
}

func New(cfg Config) Logger {
	l := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if cfg.Format == "text" {
		l.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: time.RFC3339Nano,
			FullTimestamp:   true,
		})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339Nano,
		})
	}
	l.SetOutput(os.Stdout)

	return &logrusLogger{
		logger: l,
		fields: map[string]interface{}{"service": cfg.ServiceName},
	}
}

func (l *logrusLogger) Debug(ctx context.Context, message string, fields map[string]interface{}) {
	l.entry(ctx, fields, nil).Debug(message)
}

func (l *logrusLogger) Info(ctx context.Context, message string, fields map[string]interface{}) {
	l.entry(ctx, fields, nil).Info(message)
}

func (l *logrusLogger) Warn(ctx context.Context, message string, fields map[string]interface{}) {
	l.entry(ctx, fields, nil).Warn(message)
}

func (l *logrusLogger) Error(ctx context.Context, message string, err error, fields map[string]interface{}) {
	l.entry(ctx, fields, err).Error(message)
}

func (l *logrusLogger) WithFields(fields map[string]interface{}) Logger {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &logrusLogger{logger: l.logger, fields: merged}
}

func (l *logrusLogger) entry(ctx context.Context, fields map[string]interface{}, err error) *logrus.Entry {
	merged := logrus.Fields{}
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	if cid, ok := ctx.Value(CorrelationIDKey).(string); ok && cid != "" {
		merged["correlation_id"] = cid
	}
	if err != nil {
		merged["error"] = err.Error()
	}
	return l.logger.WithFields(merged)
}

// LogAuthEvent records an authentication event in a uniform shape so auth
// activity can be filtered out of the log stream.
func LogAuthEvent(ctx context.Context, l Logger, event string, userID int64, success bool, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	fields["event_type"] = "auth"
	fields["auth_event"] = event
	if userID != 0 {
		fields["user_id"] = userID
	}
	fields["success"] = success

	if success {
		l.Info(ctx, "auth event: "+event, fields)
		return
	}
	l.Warn(ctx, "auth event failed: "+event, fields)
}
