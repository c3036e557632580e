package models

// DecisionSource records which path produced a classification or mapping.
type DecisionSource string

const (
	// SourceAI means the completion service answered and was parsed.
	SourceAI DecisionSource = "ai"
	// SourceRules means the deterministic fallback was used.
	SourceRules DecisionSource = "rules"
)
