package domain

import "time"

// ServiceQuality is a closed set in the UI but reaches the prompt as free text.
type ServiceQuality string

const (
	ServicePoor      ServiceQuality = "Poor"
	ServiceFair      ServiceQuality = "Fair"
	ServiceGood      ServiceQuality = "Good"
	ServiceExcellent ServiceQuality = "Excellent"
)

// ServiceQualities lists the selectable labels in display order.
var ServiceQualities = []ServiceQuality{ServicePoor, ServiceFair, ServiceGood, ServiceExcellent}

func (q ServiceQuality) Valid() bool {
	for _, s := range ServiceQualities {
		if q == s {
			return true
		}
	}
	return false
}

// LegendEntry is informational only; nothing enforces these ranges.
type LegendEntry struct {
	Quality    ServiceQuality `json:"quality"`
	MinPercent int            `json:"min_percent"`
	MaxPercent int            `json:"max_percent"`
}

var TipLegend = []LegendEntry{
	{Quality: ServicePoor, MinPercent: 10, MaxPercent: 12},
	{Quality: ServiceFair, MinPercent: 13, MaxPercent: 17},
	{Quality: ServiceGood, MinPercent: 15, MaxPercent: 20},
	{Quality: ServiceExcellent, MinPercent: 18, MaxPercent: 25},
}

type TipRequest struct {
	BillAmount     float64
	ServiceQuality ServiceQuality
	GroupSize      int
}

// SuggestionOutcome holds either a suggestion text or a failure message, never both.
type SuggestionOutcome struct {
	text    string
	message string
	failed  bool
}

func Success(text string) SuggestionOutcome {
	return SuggestionOutcome{text: text}
}

func Failure(message string) SuggestionOutcome {
	return SuggestionOutcome{message: message, failed: true}
}

func (o SuggestionOutcome) Failed() bool {
	return o.failed
}

// Text returns the suggestion and false for a failed outcome.
func (o SuggestionOutcome) Text() (string, bool) {
	return o.text, !o.failed
}

// Message returns the failure message and false for a successful outcome.
func (o SuggestionOutcome) Message() (string, bool) {
	return o.message, o.failed
}

// Display renders the outcome for the result slot.
func (o SuggestionOutcome) Display() string {
	if o.failed {
		return "Error: " + o.message
	}
	return o.text
}

// SessionState is the loading flag and result slot of one presentation session.
type SessionState struct {
	Loading    bool      `json:"loading"`
	Suggestion string    `json:"suggestion"`
	Failed     bool      `json:"failed"`
	UpdatedAt  time.Time `json:"updated_at"`
}
