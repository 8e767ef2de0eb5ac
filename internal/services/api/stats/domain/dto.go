// Package domain holds DTOs for stats http and service contracts
package domain

// TopSignsInput selects the window and size of the sign ranking
// zero values fall back to 20 signs over the last 30 days
type TopSignsInput struct {
	Limit int `json:"limit" validate:"omitempty,min=1,max=1000" example:"20"`
	Days  int `json:"days" validate:"omitempty,min=1,max=3650" example:"30"`
}

// SignRow is one ranked sign
type SignRow struct {
	Sign        string `json:"sign" example:"AN"`
	Count       int64  `json:"count" example:"420"`
	Conversions int64  `json:"conversions" example:"37"`
}

// TopSignsOutput is the ranking plus the window it covers
type TopSignsOutput struct {
	Since string    `json:"since" example:"2026-09-19"`
	Until string    `json:"until" example:"2026-10-19"`
	Signs []SignRow `json:"signs"`
}
