package domain

import (
	"image"
	"time"

	"github.com/google/uuid"
)

// Session groups the documents and chat history of one anonymous client.
type Session struct {
	ID        uuid.UUID `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// DocumentMeta stores metadata about an uploaded document.
type DocumentMeta struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	SessionID    uuid.UUID      `db:"session_id" json:"session_id"`
	FileName     string         `db:"file_name" json:"file_name"`
	OriginalName string         `db:"original_name" json:"original_name"`
	FileType     FileType       `db:"file_type" json:"file_type"`
	FileSize     int64          `db:"file_size" json:"file_size"`
	S3Bucket     string         `db:"s3_bucket" json:"s3_bucket"`
	S3Key        string         `db:"s3_key" json:"s3_key"`
	ContentType  string         `db:"content_type" json:"content_type"`
	SourceFormat SourceFormat   `db:"source_format" json:"source_format"`
	PageCount    int            `db:"page_count" json:"page_count"`
	Status       DocumentStatus `db:"status" json:"status"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}

// ExtractedContent is the output of content extraction for one uploaded file.
// It is immutable after creation; extraction is deterministic for the same bytes.
type ExtractedContent struct {
	Text         string
	Images       []image.Image
	SourceFormat SourceFormat
	PageCount    int
}

// ContentPart is a single prompt-input unit sent to the model: either a
// bounded text string or a size-capped, PNG-encoded image. Parts are built
// fresh for every model call and never persisted.
type ContentPart struct {
	Text  string
	Image []byte
}

// IsImage reports whether the part carries image data.
func (p ContentPart) IsImage() bool {
	return len(p.Image) > 0
}

// Entity is a single value the model extracted from the document.
type Entity struct {
	Type       EntityType `json:"type"`
	Value      string     `json:"value"`
	Confidence float64    `json:"confidence"`
	Context    string     `json:"context"`
}

// AnalysisResult is the structured outcome of one document analysis.
// List fields are always non-nil and Confidence is always within [0,1].
// A result is never mutated after creation; a follow-up question produces
// a separate ChatTurn, not a change to this record.
type AnalysisResult struct {
	DocumentType    DocumentType `json:"document_type"`
	Summary         string       `json:"summary"`
	Entities        []Entity     `json:"entities"`
	KeyPoints       []string     `json:"key_points"`
	RiskFactors     []string     `json:"risk_factors"`
	Recommendations []string     `json:"recommendations"`
	Sentiment       Sentiment    `json:"sentiment"`
	Urgency         Urgency      `json:"urgency"`
	Completeness    Completeness `json:"completeness"`
	Confidence      float64      `json:"confidence"`
	ProcessingTime  float64      `json:"processing_time"`
	Timestamp       string       `json:"timestamp"`
	ModelUsed       string       `json:"model_used,omitempty"`
	// RawResponse holds the unparsed model output on the degraded path only.
	RawResponse string `json:"raw_response,omitempty"`
}

// NormalizeLists replaces nil list fields with empty slices so that the
// invariant "list fields default to empty sequences, never absent" holds
// regardless of how the result was constructed.
func (r *AnalysisResult) NormalizeLists() {
	if r.Entities == nil {
		r.Entities = []Entity{}
	}
	if r.KeyPoints == nil {
		r.KeyPoints = []string{}
	}
	if r.RiskFactors == nil {
		r.RiskFactors = []string{}
	}
	if r.Recommendations == nil {
		r.Recommendations = []string{}
	}
}

// AnalysisRecord is the persisted form of an AnalysisResult.
type AnalysisRecord struct {
	ID           uuid.UUID    `db:"id" json:"id"`
	SessionID    uuid.UUID    `db:"session_id" json:"session_id"`
	DocumentID   uuid.UUID    `db:"document_id" json:"document_id"`
	DocumentType DocumentType `db:"document_type" json:"document_type"`
	Confidence   float64      `db:"confidence" json:"confidence"`
	ModelUsed    string       `db:"model_used" json:"model_used"`
	Degraded     bool         `db:"degraded" json:"degraded"`
	Result       []byte       `db:"result" json:"-"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
}

// ChatTurn is one question/answer exchange about a document. Turns are
// append-only; session reset is the only way to remove them.
type ChatTurn struct {
	ID         uuid.UUID `db:"id" json:"id"`
	SessionID  uuid.UUID `db:"session_id" json:"session_id"`
	DocumentID uuid.UUID `db:"document_id" json:"document_id"`
	Question   string    `db:"question" json:"question"`
	Answer     string    `db:"answer" json:"answer"`
	Timestamp  time.Time `db:"created_at" json:"timestamp"`
}
