package domain

import "context"

// ServicePort is consumed by handlers and other modules
type ServicePort interface {
	Translate(ctx context.Context, in TranslateInput) (TranslateOutput, error)
	Sample(ctx context.Context) (SampleOutput, error)
}
