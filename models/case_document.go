package models

// CaseDocument is a file attached to a case
type CaseDocument struct {
	ID             FlexString `json:"id"`
	CaseNumber     FlexString `json:"case_number"`
	DocumentType   FlexString `json:"document_type,omitempty"`
	DocumentName   FlexString `json:"document_name"`
	FileName       FlexString `json:"file_name,omitempty"`
	FileURL        FlexString `json:"file_url,omitempty"`
	FileSize       FlexInt    `json:"file_size,omitempty"`
	MimeType       FlexString `json:"mime_type,omitempty"`
	Description    FlexString `json:"description,omitempty"`
	IsConfidential FlexBool   `json:"is_confidential,omitempty"`
	UploadedBy     FlexString `json:"uploaded_by,omitempty"`
	UploadDate     FlexString `json:"upload_date,omitempty"`
	CreatedAt      FlexString `json:"created_at,omitempty"`
}

// DownloadLink is a backend-resolved URL for a file
type DownloadLink struct {
	URL      string `json:"url"`
	FileName string `json:"file_name,omitempty"`
}
