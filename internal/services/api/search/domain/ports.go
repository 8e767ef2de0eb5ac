package domain

import (
	"context"

	usage "akkadian/internal/services/signusage/domain"
)

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Search(ctx context.Context, in SearchInput) (SearchOutput, error)
}

// UsagePort receives sign occurrences of rendered passages
type UsagePort interface {
	RecordAsync(b usage.Batch)
}
