package domain

import "context"

// RecorderPort stores sign occurrences for a conversion
type RecorderPort interface {
	Record(ctx context.Context, b Batch) error
}

// QueryPort reads aggregated sign usage
type QueryPort interface {
	TopSigns(ctx context.Context, w Window, limit int) ([]SignCount, error)
}
