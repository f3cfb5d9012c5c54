// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package downloadurl

import (
	"context"
	"errors"
	"fmt"

	"github.com/curioswitch/mentenote/internal/blob"
	"github.com/curioswitch/mentenote/internal/httpapi"
)

type Request struct {
	// Key is the full object key, including slashes.
	Key string `path:"*"`
}

type Response struct {
	DownloadURL string `json:"downloadUrl"`
}

// NewHandler returns a Handler.
func NewHandler(storage *blob.Storage) *Handler {
	return &Handler{storage: storage}
}

// Handler issues signed URLs for downloading stored attachments.
type Handler struct {
	storage *blob.Storage
}

func (h *Handler) DownloadURL(ctx context.Context, req *Request) (*Response, error) {
	if req.Key == "" {
		return nil, httpapi.NewError(httpapi.CodeInvalidArgument, errors.New("ファイルキーは必須です"))
	}

	ok, err := h.storage.Exists(ctx, req.Key)
	if err != nil {
		return nil, fmt.Errorf("downloadurl: checking object: %w", err)
	}
	if !ok {
		return nil, httpapi.NewError(httpapi.CodeNotFound, errors.New("ファイルが見つかりません"))
	}

	url, err := h.storage.SignedDownloadURL(req.Key)
	if err != nil {
		return nil, fmt.Errorf("downloadurl: issuing signed url: %w", err)
	}

	return &Response{DownloadURL: url}, nil
}
