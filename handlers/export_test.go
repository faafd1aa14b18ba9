package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"testing"

	"casa_portal_go/middleware"
	"casa_portal_go/models"
	"casa_portal_go/services"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExportAuditLogsHandler(t *testing.T) {
	t.Run("CSV is served as an attachment and archived", func(t *testing.T) {
		env := newTestEnv(t, signedIn)
		archiveDir := t.TempDir()
		env.deps.Archiver = services.NewExportArchiver(services.NewLocalArchive(archiveDir), true, zap.NewNop())
		env.backend.handle(http.MethodGet, "/casa/v1/audit-logs/export", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "login", r.URL.Query().Get("action"))
			w.Header().Set("Content-Type", "text/csv")
			w.Write([]byte("id,action\n1,login\n"))
		})

		c, rec := env.context(http.MethodGet, "/api/audit-logs/export?action=login", nil)
		c.Set(middleware.ContextKeyOrganization, &models.Organization{ID: "4"})

		require.NoError(t, ExportAuditLogsHandler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "id,action\n1,login\n", rec.Body.String())
		assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), `attachment; filename="audit-logs-`)
		assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), `.csv"`)

		archived, err := filepath.Glob(filepath.Join(archiveDir, "exports", "4", "*.csv"))
		require.NoError(t, err)
		require.Len(t, archived, 1)
		key := rec.Header().Get(HeaderExportArchive)
		assert.True(t, strings.HasPrefix(key, "exports/4/"))
		assert.Equal(t, filepath.Base(archived[0]), filepath.Base(key))
	})

	t.Run("Unknown format", func(t *testing.T) {
		env := newTestEnv(t, signedIn)
		c, _ := env.context(http.MethodGet, "/api/audit-logs/export?format=pdf", nil)

		err := ExportAuditLogsHandler(c)
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})
}

func TestDownloadDocumentHandler(t *testing.T) {
	t.Run("Redirects to the resolved URL", func(t *testing.T) {
		env := newTestEnv(t, signedIn)
		env.backend.respond(http.MethodGet, "/casa/v1/documents/9/download", http.StatusOK, `{"download_url":"https://files.test/report.pdf"}`)

		c, rec := env.context(http.MethodGet, "/api/documents/9/download", nil)
		c.SetParamNames("id")
		c.SetParamValues("9")

		require.NoError(t, DownloadDocumentHandler(c))
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "https://files.test/report.pdf", rec.Header().Get("Location"))
	})

	t.Run("Missing link", func(t *testing.T) {
		env := newTestEnv(t, signedIn)
		env.backend.respond(http.MethodGet, "/casa/v1/documents/9/download", http.StatusNotFound, `{"message":"Document not found"}`)

		c, _ := env.context(http.MethodGet, "/api/documents/9/download", nil)
		c.SetParamNames("id")
		c.SetParamValues("9")

		err := DownloadDocumentHandler(c)
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusNotFound, httpErr.Code)
		assert.Equal(t, "Document not found", httpErr.Message)
	})
}

func TestUploadDocumentHandler(t *testing.T) {
	env := newTestEnv(t, signedIn)
	env.backend.handle(http.MethodPost, "/casa/v1/documents/upload", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "C-001", r.FormValue("case_number"))
		assert.Equal(t, "1", r.FormValue("is_confidential"))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "notes.txt", header.Filename)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":21,"case_number":"C-001","document_name":"notes.txt"}`))
	})

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("case_number", "C-001"))
	require.NoError(t, mw.WriteField("is_confidential", "true"))
	part, err := mw.CreateFormFile("file", "notes.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte(strings.Repeat("visit notes ", 100)))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	c, rec := env.context(http.MethodPost, "/api/documents", &body)
	c.Request().Header.Set(echo.HeaderContentType, mw.FormDataContentType())

	require.NoError(t, UploadDocumentHandler(c))
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "100", rec.Header().Get("X-Upload-Progress"))
	assert.Contains(t, rec.Body.String(), `"id":"21"`)
}

func TestUploadDocumentHandler_NoFile(t *testing.T) {
	env := newTestEnv(t, signedIn)
	c, _ := env.context(http.MethodPost, "/api/documents", strings.NewReader("case_number=C-001"))
	formRequest(c)

	err := UploadDocumentHandler(c)
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}
