// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package llm invokes the language model that drives the record
// extraction chat and parses its responses.
package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"
)

// Role is the sender of a conversation turn.
type Role string

const (
	// RoleUser is a turn written by the user.
	RoleUser Role = "user"
	// RoleAssistant is a turn written by the assistant.
	RoleAssistant Role = "assistant"
)

// Message is one turn of the conversation sent to the model.
type Message struct {
	Role    Role
	Content string
}

// Provider selects the model backend.
type Provider string

const (
	// ProviderGoogle generates with the Gemini API.
	ProviderGoogle Provider = "google"
	// ProviderOpenAI generates with the OpenAI chat completions API.
	ProviderOpenAI Provider = "openai"
)

// NewClient returns a Client generating with the given provider and
// model.
func NewClient(genAI *genai.Client, oai *openai.Client, provider Provider, model string, maxOutputTokens int32) *Client {
	return &Client{
		genAI:           genAI,
		oai:             oai,
		provider:        provider,
		model:           model,
		maxOutputTokens: maxOutputTokens,
	}
}

// Client is the gateway to the language model. One ordered conversation
// in, one raw generated text out; no tools, no streaming, no retries.
type Client struct {
	genAI           *genai.Client
	oai             *openai.Client
	provider        Provider
	model           string
	maxOutputTokens int32
}

// Generate sends the ordered conversation with the extraction system
// prompt and returns the raw model output.
func (c *Client) Generate(ctx context.Context, msgs []Message) (string, error) {
	switch c.provider {
	case ProviderOpenAI:
		return c.generateOpenAI(ctx, msgs)
	case ProviderGoogle:
		return c.generateGemini(ctx, msgs)
	}
	return c.generateGemini(ctx, msgs)
}

func (c *Client) generateGemini(ctx context.Context, msgs []Message) (string, error) {
	contents := make([]*genai.Content, len(msgs))
	for i, msg := range msgs {
		role := genai.Role(genai.RoleUser)
		if msg.Role == RoleAssistant {
			role = genai.RoleModel
		}
		contents[i] = genai.NewContentFromText(msg.Content, role)
	}

	res, err := c.genAI.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemPrompt, genai.RoleModel),
		ResponseMIMEType:  "application/json",
		MaxOutputTokens:   c.maxOutputTokens,
	})
	if err != nil {
		return "", fmt.Errorf("llm: calling GenerateContent: %w", err)
	}
	if len(res.Candidates) != 1 || res.Candidates[0].Content == nil || len(res.Candidates[0].Content.Parts) != 1 || res.Candidates[0].Content.Parts[0].Text == "" {
		return "", fmt.Errorf("llm: unexpected response from generate ai: %v", res)
	}
	return res.Candidates[0].Content.Parts[0].Text, nil
}

func (c *Client) generateOpenAI(ctx context.Context, msgs []Message) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs)+1)
	messages = append(messages, openai.SystemMessage(SystemPrompt))
	for _, msg := range msgs {
		if msg.Role == RoleAssistant {
			messages = append(messages, openai.AssistantMessage(msg.Content))
		} else {
			messages = append(messages, openai.UserMessage(msg.Content))
		}
	}

	res, err := c.oai.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(c.model),
		Messages:            messages,
		MaxCompletionTokens: openai.Int(int64(c.maxOutputTokens)),
	})
	if err != nil {
		return "", fmt.Errorf("llm: calling chat completions: %w", err)
	}
	if len(res.Choices) != 1 || res.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("llm: unexpected response from chat completions: %v", res)
	}
	return res.Choices[0].Message.Content, nil
}
