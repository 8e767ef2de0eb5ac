package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	TopSigns(ctx context.Context, in TopSignsInput) (TopSignsOutput, error)
}
