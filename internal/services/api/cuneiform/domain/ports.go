package domain

import (
	"context"

	usage "akkadian/internal/services/signusage/domain"
)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Render(ctx context.Context, in RenderInput) (RenderOutput, error)
	Analyze(ctx context.Context, in RenderInput) (AnalyzeOutput, error)
	Normalize(ctx context.Context, in NormalizeInput) (NormalizeOutput, error)
}

// UsagePort receives sign occurrences after each render
// implementations must not block the caller
type UsagePort interface {
	RecordAsync(b usage.Batch)
}
