package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"

	"go.uber.org/zap"
)

// File is an upload payload
type File struct {
	FieldName string // defaults to "file"
	Name      string
	Reader    io.Reader
}

// ProgressFunc receives upload progress from 0 to 100
type ProgressFunc func(percent int)

// Upload posts a multipart form. The multipart writer sets Content-Type with its boundary.
func (c *Client) Upload(ctx context.Context, path string, file File, fields map[string]string, onProgress ProgressFunc, opts ...RequestOption) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("upload panicked", zap.String("path", path), zap.Any("panic", r))
			resp = Response{Success: false, Error: fmt.Sprint(r)}
		}
	}()

	if file.Reader == nil {
		return Response{Success: false, Error: "no file provided"}
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := writer.WriteField(k, fields[k]); err != nil {
			return Response{Success: false, Error: err.Error()}
		}
	}

	fieldName := file.FieldName
	if fieldName == "" {
		fieldName = "file"
	}
	part, err := writer.CreateFormFile(fieldName, file.Name)
	if err != nil {
		return Response{Success: false, Error: err.Error()}
	}
	if _, err := io.Copy(part, file.Reader); err != nil {
		return Response{Success: false, Error: fmt.Sprintf("failed to read file: %v", err)}
	}
	if err := writer.Close(); err != nil {
		return Response{Success: false, Error: err.Error()}
	}

	total := int64(buf.Len())
	progress := &progressReader{r: &buf, total: total, report: onProgress, last: -1}
	progress.emit(0)

	resp = c.do(ctx, http.MethodPost, path, progress, writer.FormDataContentType(), total, opts)
	if resp.Success {
		progress.emit(100)
	}
	return resp
}

// progressReader reports monotonic integer percentages as the body is consumed
type progressReader struct {
	r      io.Reader
	total  int64
	read   int64
	last   int
	report ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.read += int64(n)
	if p.total > 0 {
		p.emit(int(p.read * 100 / p.total))
	}
	return n, err
}

func (p *progressReader) emit(percent int) {
	if p.report == nil {
		return
	}
	if percent > 100 {
		percent = 100
	}
	if percent <= p.last {
		return
	}
	p.last = percent
	p.report(percent)
}
