// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package uploadurl

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/curioswitch/go-usegcp/middleware/firebaseauth"

	"github.com/curioswitch/mentenote/internal/blob"
	"github.com/curioswitch/mentenote/internal/httpapi"
)

// pdfContentType is the only content type accepted for uploads.
const pdfContentType = "application/pdf"

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

type Request struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
}

type Response struct {
	UploadURL string `json:"uploadUrl"`
	Key       string `json:"key"`
}

// NewHandler returns a Handler.
func NewHandler(storage *blob.Storage) *Handler {
	return &Handler{storage: storage}
}

// Handler issues signed URLs for uploading PDF attachments. The object
// key is namespaced under the authenticated user so uploads cannot
// collide across users.
type Handler struct {
	storage *blob.Storage
}

func (h *Handler) UploadURL(ctx context.Context, req *Request) (*Response, error) {
	if strings.TrimSpace(req.FileName) == "" {
		return nil, httpapi.NewError(httpapi.CodeInvalidArgument, errors.New("ファイル名は必須です"))
	}
	contentType := req.ContentType
	if contentType == "" {
		contentType = pdfContentType
	}
	if contentType != pdfContentType || !strings.HasSuffix(strings.ToLower(req.FileName), ".pdf") {
		return nil, httpapi.NewError(httpapi.CodeInvalidArgument, errors.New("PDFファイルのみアップロード可能です"))
	}

	uid := firebaseauth.TokenFromContext(ctx).UID

	name := unsafeKeyChars.ReplaceAllString(req.FileName, "_")
	key := fmt.Sprintf("uploads/%s/%d_%s", uid, time.Now().UnixMilli(), name)

	url, err := h.storage.SignedUploadURL(key, pdfContentType)
	if err != nil {
		return nil, fmt.Errorf("uploadurl: issuing signed url: %w", err)
	}

	return &Response{UploadURL: url, Key: key}, nil
}
