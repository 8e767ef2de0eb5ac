// Package domain holds DTOs for cuneiform http and service contracts
package domain

import "akkadian/internal/core/cuneify"

// RenderInput asks for the cuneiform rendering of a transliteration
// a missing text renders as the empty string
type RenderInput struct {
	Text      *string `json:"text" validate:"omitempty,max=20000,translit" example:"a-na šar-ri be-li₂-ia"`
	Policy    string  `json:"policy,omitempty" validate:"omitempty,oneof=first all" example:"first"`
	Separator *string `json:"separator,omitempty" validate:"omitempty,max=16" example:"\n"`
}

// RenderOutput is the rendered text plus a little context
type RenderOutput struct {
	Cuneiform    string `json:"cuneiform" example:"𒀀𒈾 𒊬𒊑 𒁁𒉌𒅀"`
	Normalized   string `json:"normalized" example:"a-na šar-ri be-li₂-ia"`
	Lines        int    `json:"lines" example:"1"`
	Policy       string `json:"policy" example:"first"`
	ConversionID string `json:"conversion_id,omitempty" example:"0192f2a4-6f1e-7c3a-9d2b-5e8f1a2b3c4d"`
}

// AnalyzeOutput exposes every stage of the pipeline for one input
type AnalyzeOutput struct {
	ConversionID string         `json:"conversion_id,omitempty"`
	Normalized   string         `json:"normalized"`
	Cuneiform    string         `json:"cuneiform"`
	Policy       string         `json:"policy"`
	Lines        []cuneify.Line `json:"lines"`
	Occurrences  map[string]int `json:"occurrences"`
	Unresolved   int            `json:"unresolved"`
}

// NormalizeInput asks for the normalized form only
type NormalizeInput struct {
	Text *string `json:"text" validate:"omitempty,max=20000,translit" example:"sza2 h,a-ba-ti"`
}

// NormalizeOutput is the normalized transliteration
type NormalizeOutput struct {
	Normalized string `json:"normalized" example:"ša₂ ḫa-ba-ti"`
}
