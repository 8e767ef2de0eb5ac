// Package domain holds DTOs for translate http and service contracts
package domain

// TranslateInput is a transliteration to translate into English
type TranslateInput struct {
	Text string `json:"text" validate:"required,max=20000,translit" example:"a-na šar-ri be-li₂-ia"`
}

// TranslateOutput is the joined translation and the per chunk answers
type TranslateOutput struct {
	Translation string   `json:"translation" example:"To the king my lord"`
	Chunks      []string `json:"chunks"`
	Cached      bool     `json:"cached"`
}

// SampleOutput is a transliteration users can try
type SampleOutput struct {
	Text string `json:"text"`
}
