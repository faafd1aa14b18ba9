package services

import (
	"context"
	"encoding/json"
	"io"
	"net/url"

	"casa_portal_go/apiclient"
	"casa_portal_go/models"

	"go.uber.org/zap"
)

// DocumentUpload describes a file being attached to a case
type DocumentUpload struct {
	CaseNumber     string
	DocumentType   string
	DocumentName   string
	Description    string
	IsConfidential bool
	FileName       string
	Content        io.Reader
}

// DocumentService wraps the case document endpoints
type DocumentService struct {
	BaseService
}

func NewDocumentService(api *apiclient.Client, logger *zap.Logger) *DocumentService {
	return &DocumentService{BaseService: NewBaseService(api, logger)}
}

// GetDocuments lists all documents of the organization
func (s *DocumentService) GetDocuments(ctx context.Context, page PageQuery) (res apiclient.Result[[]models.CaseDocument]) {
	const fallback = "Failed to fetch documents"
	defer guard(s.logger, "documents.list", &res, fallback)

	q := url.Values{}
	page.apply(q)
	resp := s.api.Casa().Get(ctx, "/documents", apiclient.WithQuery(q))
	return listResult[models.CaseDocument](resp, fallback, "documents")
}

// GetDocumentsByCase fetches the list and keeps documents whose case number matches exactly
func (s *DocumentService) GetDocumentsByCase(ctx context.Context, caseNumber string) (res apiclient.Result[[]models.CaseDocument]) {
	const fallback = "Failed to fetch documents"
	defer guard(s.logger, "documents.by_case", &res, fallback)

	q := url.Values{"case_number": {caseNumber}}
	resp := s.api.Casa().Get(ctx, "/documents", apiclient.WithQuery(q))
	all := listResult[models.CaseDocument](resp, fallback, "documents")
	if !all.Success {
		return all
	}

	docs := make([]models.CaseDocument, 0, len(all.Data))
	for _, d := range all.Data {
		if d.CaseNumber.String() == caseNumber {
			docs = append(docs, d)
		}
	}
	return apiclient.OK(docs)
}

// UploadDocument sends the file as multipart form data and reports progress 0-100
func (s *DocumentService) UploadDocument(ctx context.Context, doc DocumentUpload, onProgress apiclient.ProgressFunc) (res apiclient.Result[models.CaseDocument]) {
	const fallback = "Failed to upload document"
	defer guard(s.logger, "documents.upload", &res, fallback)

	fields := map[string]string{
		"case_number":   doc.CaseNumber,
		"document_type": doc.DocumentType,
		"document_name": firstNonBlank(doc.DocumentName, doc.FileName),
		"description":   doc.Description,
	}
	if doc.IsConfidential {
		fields["is_confidential"] = "1"
	}

	file := apiclient.File{Name: doc.FileName, Reader: doc.Content}
	resp := s.api.Casa().Upload(ctx, "/documents/upload", file, fields, onProgress)
	return objectResult[models.CaseDocument](resp, fallback)
}

func (s *DocumentService) DeleteDocument(ctx context.Context, id string) (res apiclient.Result[json.RawMessage]) {
	const fallback = "Failed to delete document"
	defer guard(s.logger, "documents.delete", &res, fallback)

	return emptyResult(s.api.Casa().Delete(ctx, idPath("/documents/%s", id)), fallback)
}

// GetDownloadURL resolves the backend download link for a document
func (s *DocumentService) GetDownloadURL(ctx context.Context, id string) (res apiclient.Result[models.DownloadLink]) {
	const fallback = "Failed to get download URL"
	defer guard(s.logger, "documents.download", &res, fallback)

	return downloadLink(s.api.Casa().Get(ctx, idPath("/documents/%s/download", id)), fallback)
}

// downloadLink accepts {url}, {download_url}, {file_url} or a bare string
func downloadLink(resp apiclient.Response, fallback string) apiclient.Result[models.DownloadLink] {
	if !resp.Success {
		return apiclient.Fail[models.DownloadLink](resp.ErrorOr(fallback))
	}
	raw := UnwrapObject(resp.Data)

	var direct string
	if err := json.Unmarshal(raw, &direct); err == nil && direct != "" {
		return apiclient.OK(models.DownloadLink{URL: direct})
	}

	var payload struct {
		URL         string `json:"url"`
		DownloadURL string `json:"download_url"`
		FileURL     string `json:"file_url"`
		FileName    string `json:"file_name"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return apiclient.Fail[models.DownloadLink](fallback)
	}
	link := models.DownloadLink{
		URL:      firstNonBlank(payload.URL, payload.DownloadURL, payload.FileURL),
		FileName: payload.FileName,
	}
	if link.URL == "" {
		return apiclient.Fail[models.DownloadLink](fallback)
	}
	return apiclient.OK(link)
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
