// Package domain defines the types and ports for sign usage analytics
package domain

import "time"

// Window defines a time range with a start (Since) and end (Until)
type Window struct {
	Since time.Time
	Until time.Time
}

// Occurrence is how often one sign key resolved on one line of a conversion
type Occurrence struct {
	Line  int
	Key   string
	Sign  string
	Count int
}

// Batch is everything one conversion reports
type Batch struct {
	ConversionID string
	TableVersion string
	Source       string // cuneiform, search, cli
	At           time.Time
	Occurrences  []Occurrence
}

// SignCount is one row of the top signs query
type SignCount struct {
	Sign        string `json:"sign" example:"AN"`
	Key         string `json:"key" example:"an"`
	Count       int64  `json:"count" example:"42"`
	Conversions int64  `json:"conversions" example:"17"`
}
