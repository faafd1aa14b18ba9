package handlers

import (
	"net/http"
	"strconv"

	"casa_portal_go/services"

	"github.com/labstack/echo/v4"
)

// maxUploadSize bounds the multipart body accepted for a document upload
const maxUploadSize = 25 << 20

// ListDocumentsHandler lists documents, or a single case's documents when case_number is set
func ListDocumentsHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	if caseNumber := c.QueryParam("case_number"); caseNumber != "" {
		return respond(c, suite.Documents.GetDocumentsByCase(c.Request().Context(), caseNumber), http.StatusOK)
	}
	return respond(c, suite.Documents.GetDocuments(c.Request().Context(), pageQuery(c)), http.StatusOK)
}

// UploadDocumentHandler forwards a multipart upload to the backend
func UploadDocumentHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}

	c.Request().Body = http.MaxBytesReader(c.Response(), c.Request().Body, maxUploadSize)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No file provided")
	}
	caseNumber := c.FormValue("case_number")
	if caseNumber == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "case_number is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to read uploaded file")
	}
	defer file.Close()

	confidential, _ := strconv.ParseBool(c.FormValue("is_confidential"))
	upload := services.DocumentUpload{
		CaseNumber:     caseNumber,
		DocumentType:   c.FormValue("document_type"),
		DocumentName:   c.FormValue("document_name"),
		Description:    c.FormValue("description"),
		IsConfidential: confidential,
		FileName:       fileHeader.Filename,
		Content:        file,
	}

	progress := 0
	res := suite.Documents.UploadDocument(c.Request().Context(), upload, func(percent int) {
		progress = percent
	})
	c.Response().Header().Set("X-Upload-Progress", strconv.Itoa(progress))

	if res.Success {
		mirrorToForms(c, suite, services.FormDocumentUpload, map[string]interface{}{
			"case_number":   upload.CaseNumber,
			"document_type": upload.DocumentType,
			"document_name": res.Data.DocumentName.String(),
			"description":   upload.Description,
		})
	}
	return respond(c, res, http.StatusCreated)
}

// DeleteDocumentHandler deletes a document
func DeleteDocumentHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	return respond(c, suite.Documents.DeleteDocument(c.Request().Context(), c.Param("id")), http.StatusOK)
}

// DownloadDocumentHandler redirects to the document's download URL
func DownloadDocumentHandler(c echo.Context) error {
	suite, err := suiteFor(c)
	if err != nil {
		return err
	}
	res := suite.Documents.GetDownloadURL(c.Request().Context(), c.Param("id"))
	return redirectToDownload(c, res.Data.URL, res.Error)
}
