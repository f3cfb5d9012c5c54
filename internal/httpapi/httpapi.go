// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package httpapi adapts unary request/response handlers to JSON over
// HTTP. Handlers keep the func(ctx, *Request) (*Response, error) shape,
// with path and query parameters bound to request struct fields via
// `path` and `query` tags.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"

	"github.com/go-chi/chi/v5"
)

type handlerOptions struct {
	status int
}

// Option configures a registered handler.
type Option func(*handlerOptions)

// WithStatus sets the HTTP status written on success. The default is
// 200 OK.
func WithStatus(status int) Option {
	return func(o *handlerOptions) {
		o.status = status
	}
}

// Handle registers fn on the mux for the given method and chi pattern.
// The request body, when present, is decoded as JSON into Req before
// parameter binding.
func Handle[Req any, Res any](mux chi.Router, method string, pattern string, fn func(context.Context, *Req) (*Res, error), opts ...Option) {
	o := handlerOptions{status: http.StatusOK}
	for _, opt := range opts {
		opt(&o)
	}

	mux.MethodFunc(method, pattern, func(w http.ResponseWriter, r *http.Request) {
		req := new(Req)
		if r.Method == http.MethodPost || r.Method == http.MethodPut {
			if err := json.NewDecoder(r.Body).Decode(req); err != nil && !errors.Is(err, io.EOF) {
				WriteError(r.Context(), w, NewError(CodeInvalidArgument, fmt.Errorf("httpapi: decoding request body: %w", err)))
				return
			}
		}
		if err := bindParams(r, req); err != nil {
			WriteError(r.Context(), w, NewError(CodeInvalidArgument, err))
			return
		}

		res, err := fn(r.Context(), req)
		if err != nil {
			WriteError(r.Context(), w, err)
			return
		}
		writeJSON(r.Context(), w, o.status, dataEnvelope{Data: res})
	})
}

// bindParams fills req fields tagged `path` or `query` from the
// request. Only string and int fields are bindable.
func bindParams(r *http.Request, req any) error {
	v := reflect.ValueOf(req).Elem()
	if v.Kind() != reflect.Struct {
		return nil
	}

	t := v.Type()
	for i := range t.NumField() {
		f := t.Field(i)
		var raw string
		if name, ok := f.Tag.Lookup("path"); ok {
			raw = chi.URLParam(r, name)
		} else if name, ok := f.Tag.Lookup("query"); ok {
			raw = r.URL.Query().Get(name)
		} else {
			continue
		}
		if raw == "" {
			continue
		}

		field := v.Field(i)
		switch field.Kind() {
		case reflect.String:
			field.SetString(raw)
		case reflect.Int:
			n, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("httpapi: parsing parameter %s: %w", f.Name, err)
			}
			field.SetInt(int64(n))
		default:
			return fmt.Errorf("httpapi: unsupported bind kind %s for field %s", field.Kind(), f.Name)
		}
	}
	return nil
}

type dataEnvelope struct {
	Data any `json:"data"`
}

type errorEnvelope struct {
	Error string `json:"error"`
}

// WriteError writes err as the JSON error envelope. Handlers that bypass
// Handle, such as file downloads, use it to keep error responses uniform.
func WriteError(ctx context.Context, w http.ResponseWriter, err error) {
	var herr *Error
	if !errors.As(err, &herr) {
		herr = NewError(CodeInternal, err)
	}
	msg := herr.Error()
	if herr.Code() == CodeInternal {
		slog.ErrorContext(ctx, "httpapi: internal error", "error", err)
		msg = "Internal server error"
	}
	writeJSON(ctx, w, herr.Code().httpStatus(), errorEnvelope{Error: msg})
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.ErrorContext(ctx, "httpapi: encoding response", "error", err)
	}
}
