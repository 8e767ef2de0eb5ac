// Package domain holds DTOs for corpus search http and service contracts
package domain

import "akkadian/internal/adapters/cdli"

// SearchInput is a keyword search against the corpus site
type SearchInput struct {
	Text string `json:"text" validate:"required,max=200,translit" example:"gilgamesh"`
}

// Passage is one continuous run of numbered lines with its rendering
type Passage struct {
	Text      string `json:"text"`
	Cuneiform string `json:"cuneiform"`
}

// Result is one corpus artifact
type Result struct {
	Title           string       `json:"title,omitempty"`
	ArtifactLink    string       `json:"artifact_link,omitempty"`
	ImageURL        string       `json:"image_url,omitempty"`
	Metadata        []cdli.Field `json:"metadata"`
	Transliteration string       `json:"transliteration"`
	Passages        []Passage    `json:"passages"`
	Unparsed        []string     `json:"unparsed,omitempty"`
}

// SearchOutput is the list of artifacts for one query
type SearchOutput struct {
	Query     string   `json:"query"`
	SourceURL string   `json:"source_url"`
	Results   []Result `json:"results"`
}
