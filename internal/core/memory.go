package core

import "time"

type Category string

const (
	CategoryAutomaticThoughts Category = "automatic_thoughts"
	CategoryEmotions          Category = "emotions"
	CategoryBehaviors         Category = "behaviors"
	CategoryValuesGoals       Category = "values_goals"
	CategoryStrengths         Category = "strengths"
	CategoryLifeContext       Category = "life_context"
)

var categories = []Category{
	CategoryAutomaticThoughts,
	CategoryEmotions,
	CategoryBehaviors,
	CategoryValuesGoals,
	CategoryStrengths,
	CategoryLifeContext,
}

var categoryLabels = map[Category]string{
	CategoryAutomaticThoughts: "Automatic Thoughts",
	CategoryEmotions:          "Emotions",
	CategoryBehaviors:         "Behaviors",
	CategoryValuesGoals:       "Values & Goals",
	CategoryStrengths:         "Strengths",
	CategoryLifeContext:       "Life Context",
}

// Categories returns every insight category in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// Insight is a durable statement about a recurring pattern in the user's conversations.
// Insights are never mutated after creation.
type Insight struct {
	ID               string    `json:"id"`
	Category         Category  `json:"category"`
	Content          string    `json:"content"`
	Date             time.Time `json:"date"`
	SourceMessageIDs []string  `json:"sourceMessageIds"`
	Confidence       float64   `json:"confidence"`
}

type SummaryType string

const (
	SummaryTypeSession      SummaryType = "session"
	SummaryTypeConsolidated SummaryType = "consolidated"
)

type Summary struct {
	ID   string      `json:"id"`
	Text string      `json:"text"`
	Date time.Time   `json:"date"`
	Type SummaryType `json:"type"`
	// SessionIDs lists the session summaries folded into a consolidated summary.
	SessionIDs   []string `json:"sessionIds,omitempty"`
	MessageCount int      `json:"messageCount"`
}

type ExtractionMetadata struct {
	LastExtraction time.Time `json:"lastExtraction"`
	// MessageCount is the user-message baseline recorded at the last successful extraction.
	MessageCount int `json:"messageCount"`
}

type MemoryContext struct {
	Insights     []Insight `json:"insights"`
	Summaries    []Summary `json:"summaries"`
	Consolidated *Summary  `json:"consolidatedSummary,omitempty"`
}
