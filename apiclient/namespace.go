package apiclient

import (
	"context"
	"net/http"
	"strings"
)

// Namespace prefixes paths for one endpoint family. It holds no state of its own.
type Namespace struct {
	client *Client
	prefix string
}

// WP targets the generic namespace (JWT issuance, core routes)
func (c *Client) WP() Namespace {
	return Namespace{client: c}
}

// Forms targets the forms plugin; calls carry the static Basic-Auth credential
func (c *Client) Forms() Namespace {
	return Namespace{client: c, prefix: FormsPrefix}
}

// Casa targets the application namespace where all domain CRUD lives
func (c *Client) Casa() Namespace {
	return Namespace{client: c, prefix: CasaPrefix}
}

// Custom is kept for callers that predate Casa
func (c *Client) Custom() Namespace {
	return c.Casa()
}

// Path returns the full path below the base path
func (n Namespace) Path(path string) string {
	if path == "" {
		return n.prefix
	}
	return n.prefix + "/" + strings.TrimPrefix(path, "/")
}

// URL returns the absolute URL of a path in this namespace
func (n Namespace) URL(path string) string {
	return n.client.URL(n.Path(path))
}

func (n Namespace) Get(ctx context.Context, path string, opts ...RequestOption) Response {
	return n.client.Request(ctx, http.MethodGet, n.Path(path), nil, opts...)
}

func (n Namespace) Post(ctx context.Context, path string, body interface{}, opts ...RequestOption) Response {
	return n.client.Request(ctx, http.MethodPost, n.Path(path), body, opts...)
}

func (n Namespace) Put(ctx context.Context, path string, body interface{}, opts ...RequestOption) Response {
	return n.client.Request(ctx, http.MethodPut, n.Path(path), body, opts...)
}

func (n Namespace) Patch(ctx context.Context, path string, body interface{}, opts ...RequestOption) Response {
	return n.client.Request(ctx, http.MethodPatch, n.Path(path), body, opts...)
}

func (n Namespace) Delete(ctx context.Context, path string, opts ...RequestOption) Response {
	return n.client.Request(ctx, http.MethodDelete, n.Path(path), nil, opts...)
}

// Upload sends a multipart file in this namespace
func (n Namespace) Upload(ctx context.Context, path string, file File, fields map[string]string, onProgress ProgressFunc, opts ...RequestOption) Response {
	return n.client.Upload(ctx, n.Path(path), file, fields, onProgress, opts...)
}
