package services

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"casa_portal_go/apiclient"

	"go.uber.org/zap"
)

// BaseService holds what every domain service needs: the session-bound client and a logger
type BaseService struct {
	api    *apiclient.Client
	logger *zap.Logger
}

// NewBaseService creates a base service. A nil logger falls back to the client's.
func NewBaseService(api *apiclient.Client, logger *zap.Logger) BaseService {
	if logger == nil {
		logger = api.Logger()
	}
	return BaseService{api: api, logger: logger}
}

// guard turns a panic inside a service method into a failed result
func guard[T any](logger *zap.Logger, op string, res *apiclient.Result[T], fallback string) {
	if r := recover(); r != nil {
		logger.Error("service call panicked", zap.String("op", op), zap.Any("panic", r))
		*res = apiclient.Fail[T](fallback)
	}
}

// listResult unwraps a list response with the standard shape tolerance
func listResult[T any](resp apiclient.Response, fallback string, keys ...string) apiclient.Result[[]T] {
	if !resp.Success {
		return apiclient.Fail[[]T](resp.ErrorOr(fallback))
	}
	return apiclient.OK(UnwrapCollection[T](resp.Data, keys...))
}

// objectResult unwraps and decodes a single record response
func objectResult[T any](resp apiclient.Response, fallback string) apiclient.Result[T] {
	if !resp.Success {
		return apiclient.Fail[T](resp.ErrorOr(fallback))
	}
	v, err := DecodeObject[T](resp.Data)
	if err != nil {
		return apiclient.Fail[T](fallback)
	}
	return apiclient.OK(v)
}

// emptyResult reports only success or failure
func emptyResult(resp apiclient.Response, fallback string) apiclient.Result[json.RawMessage] {
	if !resp.Success {
		return apiclient.Fail[json.RawMessage](resp.ErrorOr(fallback))
	}
	return apiclient.OK(UnwrapObject(resp.Data))
}

// PageQuery holds common list parameters
type PageQuery struct {
	Page    int
	PerPage int
	Search  string
}

func (p PageQuery) apply(q url.Values) {
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(p.PerPage))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
}

func setIf(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

func idPath(format string, ids ...string) string {
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = url.PathEscape(id)
	}
	return fmt.Sprintf(format, args...)
}
