package domain

// ClassificationResult is the per-request routing decision for a question.
// Department and Role are empty when no vocabulary entry matched.
type ClassificationResult struct {
	Structured bool
	Department string
	Role       string
}
