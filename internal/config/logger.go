package config

import (
	"context"
	"os"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

type ctxKey string

const userIDKey ctxKey = "log_user_id"

var Logger = logrus.New()

func init() {
	initLogger(false)
}

func initLogger(debug bool) {
	Logger.SetOutput(os.Stdout)
	if debug {
		Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		Logger.SetLevel(logrus.DebugLevel)
		return
	}
	Logger.SetFormatter(&logrus.JSONFormatter{})
	Logger.SetLevel(logrus.InfoLevel)
}

// WithUserID marks ctx so that loggers derived from it carry the user id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// WithContext returns a log entry tagged with the request id and, once the
// request is authenticated, the user id.
func WithContext(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(Logger)
	if ctx == nil {
		return entry
	}
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		entry = entry.WithField("request_id", reqID)
	}
	if userID, ok := ctx.Value(userIDKey).(string); ok && userID != "" {
		entry = entry.WithField("user_id", userID)
	}
	return entry
}
