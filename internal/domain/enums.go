package domain

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypePNG  FileType = "png"
	FileTypeJPG  FileType = "jpg"
	FileTypeTIFF FileType = "tiff"
	FileTypeBMP  FileType = "bmp"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF:  "application/pdf",
	FileTypePNG:  "image/png",
	FileTypeJPG:  "image/jpeg",
	FileTypeTIFF: "image/tiff",
	FileTypeBMP:  "image/bmp",
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"png":  FileTypePNG,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"tiff": FileTypeTIFF,
	"bmp":  FileTypeBMP,
}

// SourceFormat distinguishes page-description documents from plain raster images.
type SourceFormat string

const (
	SourcePageDocument SourceFormat = "page-document"
	SourceRasterImage  SourceFormat = "raster-image"
)

// DocumentType is the classification assigned by the analysis model.
type DocumentType string

const (
	DocTypeInvoice  DocumentType = "invoice"
	DocTypeContract DocumentType = "contract"
	DocTypeResume   DocumentType = "resume"
	DocTypeReport   DocumentType = "report"
	DocTypeLetter   DocumentType = "letter"
	DocTypeOther    DocumentType = "other"
	DocTypeUnknown  DocumentType = "unknown"
)

// EntityType categorizes an extracted entity.
type EntityType string

const (
	EntityPerson       EntityType = "person"
	EntityOrganization EntityType = "organization"
	EntityDate         EntityType = "date"
	EntityAmount       EntityType = "amount"
	EntityLocation     EntityType = "location"
	EntityEmail        EntityType = "email"
	EntityPhone        EntityType = "phone"
	EntityURL          EntityType = "url"
	EntityOther        EntityType = "other"
)

// Sentiment is the overall tone the model assigned to the document.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Urgency reflects how time-sensitive the document appears to be.
type Urgency string

const (
	UrgencyHigh   Urgency = "high"
	UrgencyMedium Urgency = "medium"
	UrgencyLow    Urgency = "low"
)

// Completeness is the model's assessment of whether the document is whole.
type Completeness string

const (
	CompletenessComplete   Completeness = "complete"
	CompletenessPartial    Completeness = "partial"
	CompletenessIncomplete Completeness = "incomplete"
	CompletenessUnknown    Completeness = "unknown"
)

// DocumentStatus represents the lifecycle of an uploaded document.
type DocumentStatus string

const (
	DocumentStatusPending  DocumentStatus = "pending"
	DocumentStatusAnalyzed DocumentStatus = "analyzed"
	DocumentStatusFailed   DocumentStatus = "failed"
	DocumentStatusDeleted  DocumentStatus = "deleted"
)

// ExportFormat enumerates the supported export encodings.
type ExportFormat string

const (
	ExportJSON ExportFormat = "json"
	ExportXLSX ExportFormat = "xlsx"
	ExportCSV  ExportFormat = "csv"
	ExportTXT  ExportFormat = "txt"
)
