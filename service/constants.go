package service

const (
	DefaultModel     = "gemini-1.5-flash"
	DefaultBaseURL   = "https://generativelanguage.googleapis.com"
	DefaultGroupSize = 2

	// Texto mostrado cuando el modelo responde sin texto
	EmptySuggestionText = "Unable to generate tip suggestion"

	MaxBillAmount = 1_000_000_000.0 // 1 billón
	MaxGroupSize  = 100
)

// GenerationConfig holds the sampling parameters sent to the model.
type GenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// SuggestionGenerationConfig is sent unchanged with every suggestion call.
var SuggestionGenerationConfig = GenerationConfig{
	Temperature:     0.7,
	TopK:            40,
	TopP:            0.95,
	MaxOutputTokens: 1024,
}
