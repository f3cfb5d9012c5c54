// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package httpapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curioswitch/mentenote/internal/httpapi"
)

type echoRequest struct {
	ID      string `path:"id"`
	Keyword string `query:"keyword"`
	Limit   int    `query:"limit"`
	Name    string `json:"name"`
}

type echoResponse struct {
	ID      string `json:"id"`
	Keyword string `json:"keyword"`
	Limit   int    `json:"limit"`
	Name    string `json:"name"`
}

func echo(_ context.Context, req *echoRequest) (*echoResponse, error) {
	return &echoResponse{ID: req.ID, Keyword: req.Keyword, Limit: req.Limit, Name: req.Name}, nil
}

func TestHandleBinding(t *testing.T) {
	mux := chi.NewRouter()
	httpapi.Handle(mux, http.MethodGet, "/items/{id}", echo)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/pump-01?keyword=%E7%95%B0%E9%9F%B3&limit=5", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"id":"pump-01","keyword":"異音","limit":5,"name":""}}`, rec.Body.String())
}

func TestHandleBody(t *testing.T) {
	mux := chi.NewRouter()
	httpapi.Handle(mux, http.MethodPost, "/items/{id}", echo, httpapi.WithStatus(http.StatusCreated))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/items/pump-01", strings.NewReader(`{"name":"真空ポンプ"}`))
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"data":{"id":"pump-01","keyword":"","limit":0,"name":"真空ポンプ"}}`, rec.Body.String())
}

func TestHandleEmptyBody(t *testing.T) {
	mux := chi.NewRouter()
	httpapi.Handle(mux, http.MethodPost, "/items/{id}", echo)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/items/pump-01", nil))

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleBadLimit(t *testing.T) {
	mux := chi.NewRouter()
	httpapi.Handle(mux, http.MethodGet, "/items/{id}", echo)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/pump-01?limit=abc", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "invalid argument",
			err:     httpapi.NewError(httpapi.CodeInvalidArgument, errors.New("設備IDは必須です")),
			status:  http.StatusBadRequest,
			message: "設備IDは必須です",
		},
		{
			name:    "not found",
			err:     httpapi.NewError(httpapi.CodeNotFound, errors.New("Record not found")),
			status:  http.StatusNotFound,
			message: "Record not found",
		},
		{
			name:    "unauthenticated",
			err:     httpapi.NewError(httpapi.CodeUnauthenticated, errors.New("missing token")),
			status:  http.StatusUnauthorized,
			message: "missing token",
		},
		{
			name:    "uncoded error hides detail",
			err:     errors.New("firestore exploded"),
			status:  http.StatusInternalServerError,
			message: "Internal server error",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mux := chi.NewRouter()
			httpapi.Handle(mux, http.MethodGet, "/fail", func(_ context.Context, _ *struct{}) (*struct{}, error) {
				return nil, tc.err
			})

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))

			require.Equal(t, tc.status, rec.Code)
			assert.JSONEq(t, `{"error":"`+tc.message+`"}`, rec.Body.String())
		})
	}
}
