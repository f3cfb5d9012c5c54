// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package config

import (
	"github.com/curioswitch/go-curiostack/config"
)

type Chat struct {
	// Provider is the model provider to use for chat, either google or
	// openai.
	Provider string `koanf:"provider"`

	// Model is the name of the model to use, e.g. gemini-2.5-flash.
	Model string `koanf:"model"`

	// MaxOutputTokens caps the length of a single model response.
	MaxOutputTokens int32 `koanf:"maxoutputtokens"`
}

type Files struct {
	// Bucket is the storage bucket holding uploaded files. When empty,
	// <project>-files is used.
	Bucket string `koanf:"bucket"`

	// URLExpirySeconds is the validity of issued signed URLs in seconds.
	URLExpirySeconds int `koanf:"urlexpiryseconds"`
}

type Authorization struct {
	// EmailsCSV is a comma-separated list of emails authorized to access
	// the app.
	EmailsCSV string `koanf:"emailscsv"`
}

type Config struct {
	config.Common

	// Chat is the configuration for the chat assistant.
	Chat Chat `koanf:"chat"`

	// Files is the configuration for file storage.
	Files Files `koanf:"files"`

	// Authorization is the configuration for access authorization.
	Authorization Authorization `koanf:"authorization"`
}
