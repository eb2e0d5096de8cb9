package domain

type DocumentKind string

const (
	KindFile              DocumentKind = "file"
	KindStructuredRecord  DocumentKind = "structured-record"
	KindStructuredSummary DocumentKind = "structured-summary"
)

// IndexedDocument is one entry of the semantic index. Every document has a
// non-empty Source; Page is set only for paginated source types.
type IndexedDocument struct {
	Content    string       `json:"content"`
	Source     string       `json:"source"`
	Page       int          `json:"page,omitempty"`
	Kind       DocumentKind `json:"kind"`
	Department string       `json:"department,omitempty"`
	Name       string       `json:"name,omitempty"`
	Role       string       `json:"role,omitempty"`
	Score      float64      `json:"score"`
}

// SourceSegment is a unit of extracted corpus text. Page is zero for
// unpaginated sources.
type SourceSegment struct {
	Text string
	Page int
}

type IconKind string

const (
	IconLink     IconKind = "link"
	IconDocument IconKind = "document"
)

// Citation points a user at a source file or URL backing an answer.
type Citation struct {
	Display string   `json:"display"`
	Icon    IconKind `json:"icon"`
	Primary bool     `json:"primary"`
	Source  string   `json:"source"`
	Page    int      `json:"page,omitempty"`
}

type AnswerMode string

const (
	ModeStructured     AnswerMode = "structured"
	ModeDocumentSearch AnswerMode = "document-search"
	ModeInquiry        AnswerMode = "inquiry"
)

// AnswerPayload is the display-independent result of answering one question.
// Structured carries the classifier's routing decision for observability; it
// stays true even when the resolver reroutes to the semantic path.
type AnswerPayload struct {
	Text       string     `json:"text"`
	Citations  []Citation `json:"citations"`
	Mode       AnswerMode `json:"mode"`
	Degraded   bool       `json:"degraded,omitempty"`
	Structured bool       `json:"-"`
}
