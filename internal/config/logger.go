package config

import (
	"context"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

type logFieldsKey struct{}

// WithLogField attaches a field to every log line produced through WithContext.
func WithLogField(ctx context.Context, key string, value interface{}) context.Context {
	fields := logrus.Fields{}
	if existing, ok := ctx.Value(logFieldsKey{}).(logrus.Fields); ok {
		for k, v := range existing {
			fields[k] = v
		}
	}
	fields[key] = value
	return context.WithValue(ctx, logFieldsKey{}, fields)
}

func WithContext(ctx context.Context) logrus.FieldLogger {
	entry := logrus.NewEntry(logrus.StandardLogger())
	if ctx == nil {
		return entry
	}

	if reqID := middleware.GetReqID(ctx); reqID != "" {
		entry = entry.WithField("request_id", reqID)
	}
	if fields, ok := ctx.Value(logFieldsKey{}).(logrus.Fields); ok {
		entry = entry.WithFields(fields)
	}
	return entry
}
