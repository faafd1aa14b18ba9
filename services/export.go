package services

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Export formats
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"

	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Export is a generated file ready to download
type Export struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ExportFileName builds names like audit-logs-2024-05-01.csv
func ExportFileName(prefix, format string, now time.Time) string {
	return fmt.Sprintf("%s-%s.%s", prefix, now.Format("2006-01-02"), format)
}

// BuildWorkbook writes a single-sheet workbook with a bold header row
func BuildWorkbook(sheet string, headers []string, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for r, row := range rows {
		for c, value := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	if len(headers) > 0 {
		headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		f.SetCellStyle(sheet, "A1", last, headerStyle)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel buffer: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportArchiver keeps a copy of generated exports in storage
type ExportArchiver struct {
	store   ArchiveStore
	enabled bool
	logger  *zap.Logger
}

// NewExportArchiver creates an archiver; a nil store or enabled=false makes it a no-op
func NewExportArchiver(store ArchiveStore, enabled bool, logger *zap.Logger) *ExportArchiver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportArchiver{store: store, enabled: enabled && store != nil, logger: logger}
}

// Enabled reports whether exports are archived
func (a *ExportArchiver) Enabled() bool {
	return a != nil && a.enabled
}

// Archive stores the export under exports/<organization>/
func (a *ExportArchiver) Archive(ctx context.Context, organizationID string, export Export) (*ArchivedExport, error) {
	if !a.Enabled() {
		return nil, nil
	}
	if organizationID == "" {
		organizationID = "unknown"
	}
	key := GenerateExportKey(organizationID, export.FileName)
	result, err := a.store.Put(ctx, key, export.ContentType, export.Content)
	if err != nil {
		a.logger.Warn("failed to archive export", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	if loc, err := a.store.Location(ctx, key); err == nil {
		result.Location = loc
	}
	a.logger.Info("export archived", zap.String("key", result.Key), zap.String("location", result.Location), zap.Int64("size", result.Size))
	return result, nil
}
