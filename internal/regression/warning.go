package regression

import (
	"context"
	"log/slog"
	"slices"
)

// Category classifies a warning emitted during prediction.
type Category string

const (
	// CategoryFeatureNames is emitted when a model fitted with named features
	// is asked to predict from a bare vector.
	CategoryFeatureNames Category = "feature-names"
)

// Warning is a non-fatal notice raised by a regressor.
type Warning struct {
	Category Category
	Message  string
}

// WarningHandler receives warnings raised within a context.
type WarningHandler func(ctx context.Context, w Warning)

type warningHandlerKey struct{}

// WithWarningHandler returns a context whose warnings are routed to h.
func WithWarningHandler(ctx context.Context, h WarningHandler) context.Context {
	return context.WithValue(ctx, warningHandlerKey{}, h)
}

// SuppressWarnings returns a context that drops warnings of the given
// categories and forwards all others to the handler already in ctx.
// Suppression ends with the returned context.
func SuppressWarnings(ctx context.Context, categories ...Category) context.Context {
	next := handlerFrom(ctx)
	return WithWarningHandler(ctx, func(ctx context.Context, w Warning) {
		if slices.Contains(categories, w.Category) {
			return
		}
		next(ctx, w)
	})
}

// Warn raises w through the handler in ctx, or logs it when there is none.
func Warn(ctx context.Context, w Warning) {
	handlerFrom(ctx)(ctx, w)
}

func handlerFrom(ctx context.Context) WarningHandler {
	if h, ok := ctx.Value(warningHandlerKey{}).(WarningHandler); ok && h != nil {
		return h
	}
	return logWarning
}

func logWarning(ctx context.Context, w Warning) {
	slog.WarnContext(ctx, w.Message, "category", string(w.Category))
}
