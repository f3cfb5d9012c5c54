// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package docs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReader struct {
	data map[string][]byte
}

func (r *fakeReader) Read(_ context.Context, key string) ([]byte, error) {
	data, ok := r.data[key]
	if !ok {
		return nil, errors.New("object not found")
	}
	return data, nil
}

func TestResolvePlainText(t *testing.T) {
	resolver := NewResolver(&fakeReader{data: map[string][]byte{
		"uploads/alice/notes.txt": []byte("モーター軸受の温度上昇を確認"),
	}})

	text, err := resolver.Resolve(t.Context(), "uploads/alice/notes.txt")
	require.NoError(t, err)
	assert.Equal(t, "モーター軸受の温度上昇を確認", text)
}

func TestResolveMissing(t *testing.T) {
	resolver := NewResolver(&fakeReader{data: map[string][]byte{}})

	_, err := resolver.Resolve(t.Context(), "uploads/alice/missing.pdf")
	require.Error(t, err)
}

func TestResolveMalformedPDF(t *testing.T) {
	resolver := NewResolver(&fakeReader{data: map[string][]byte{
		"uploads/alice/broken.pdf": []byte("not a pdf"),
	}})

	_, err := resolver.Resolve(t.Context(), "uploads/alice/broken.pdf")
	require.Error(t, err)
}
