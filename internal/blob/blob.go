// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package blob wraps the object storage bucket holding uploaded PDFs.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"cloud.google.com/go/storage"
	"github.com/cenkalti/backoff/v5"
)

// ErrNotExist is returned when the referenced object does not exist.
var ErrNotExist = errors.New("blob: object does not exist")

// NewStorage returns a Storage for the bucket. urlExpiry bounds the
// validity of issued signed URLs.
func NewStorage(client *storage.Client, bucket string, urlExpiry time.Duration) *Storage {
	return &Storage{
		client:    client,
		bucket:    bucket,
		urlExpiry: urlExpiry,
	}
}

// Storage issues signed URLs for and reads objects in a single bucket.
type Storage struct {
	client    *storage.Client
	bucket    string
	urlExpiry time.Duration
}

// SignedUploadURL returns a URL allowing a PUT of the object with the
// given content type until the URL expires.
func (s *Storage) SignedUploadURL(key string, contentType string) (string, error) {
	url, err := s.client.Bucket(s.bucket).SignedURL(key, &storage.SignedURLOptions{
		Scheme:      storage.SigningSchemeV4,
		Method:      http.MethodPut,
		ContentType: contentType,
		Expires:     time.Now().Add(s.urlExpiry),
	})
	if err != nil {
		return "", fmt.Errorf("blob: signing upload url: %w", err)
	}
	return url, nil
}

// SignedDownloadURL returns a URL allowing a GET of the object until
// the URL expires.
func (s *Storage) SignedDownloadURL(key string) (string, error) {
	url, err := s.client.Bucket(s.bucket).SignedURL(key, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  http.MethodGet,
		Expires: time.Now().Add(s.urlExpiry),
	})
	if err != nil {
		return "", fmt.Errorf("blob: signing download url: %w", err)
	}
	return url, nil
}

// Exists reports whether the object exists.
func (s *Storage) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.Bucket(s.bucket).Object(key).Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("blob: checking object: %w", err)
	}
	return true, nil
}

// Read returns the full content of the object, retrying transient
// failures a few times. A missing object is reported as ErrNotExist
// without retrying.
func (s *Storage) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := backoff.Retry(ctx, func() ([]byte, error) {
		rc, err := s.client.Bucket(s.bucket).Object(key).NewReader(ctx)
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, backoff.Permanent(ErrNotExist)
		}
		if err != nil {
			return nil, err
		}
		defer func() {
			_ = rc.Close()
		}()
		return io.ReadAll(rc)
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(3))
	if err != nil {
		if errors.Is(err, ErrNotExist) {
			return nil, ErrNotExist
		}
		return nil, fmt.Errorf("blob: reading object: %w", err)
	}
	return data, nil
}
