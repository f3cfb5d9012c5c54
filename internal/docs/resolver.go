// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package docs resolves uploaded documents to plain text for the chat.
package docs

import (
	"context"
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// Reader reads an object's content from storage.
type Reader interface {
	Read(ctx context.Context, key string) ([]byte, error)
}

// NewResolver returns a Resolver reading objects through r.
func NewResolver(r Reader) *Resolver {
	return &Resolver{reader: r}
}

// Resolver fetches an attachment from storage and extracts its text.
// PDF content goes through go-fitz; anything else is returned as-is.
type Resolver struct {
	reader Reader
}

// Resolve returns the text of the attachment with the given storage
// key.
func (r *Resolver) Resolve(ctx context.Context, key string) (string, error) {
	data, err := r.reader.Read(ctx, key)
	if err != nil {
		return "", err
	}
	if !strings.HasSuffix(strings.ToLower(key), ".pdf") {
		return string(data), nil
	}
	return pdfText(data)
}

func pdfText(data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("docs: opening pdf: %w", err)
	}
	defer doc.Close()

	var pages []string
	for i := range doc.NumPage() {
		text, err := doc.Text(i)
		if err != nil {
			return "", fmt.Errorf("docs: extracting page %d: %w", i, err)
		}
		if strings.TrimSpace(text) != "" {
			pages = append(pages, text)
		}
	}
	return strings.Join(pages, "\n"), nil
}
