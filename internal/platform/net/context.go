// Package net provides utilities for working with request contexts
package net

import (
	"context"

	"github.com/google/uuid"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const keyConversionID ctxKey = "conversion_id"

// WithRequest annotates context with the request id and conversion id
func WithRequest(ctx context.Context, reqID, conversionID string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if conversionID != "" {
		ctx = context.WithValue(ctx, keyConversionID, conversionID)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	return chimw.GetReqID(ctx)
}

// ConversionID returns the conversion id on the context if present
func ConversionID(ctx context.Context) string {
	if v, ok := ctx.Value(keyConversionID).(string); ok {
		return v
	}
	return ""
}

// EnsureConversion returns ctx carrying a conversion id, minting a UUIDv7 when
// none is set, and the id itself
func EnsureConversion(ctx context.Context) (context.Context, string) {
	if id := ConversionID(ctx); id != "" {
		return ctx, id
	}
	id := uuid.Must(uuid.NewV7()).String()
	return context.WithValue(ctx, keyConversionID, id), id
}
