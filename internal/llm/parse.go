// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

package llm

import "encoding/json"

// ExtractedInfo is the structured extraction state derived from a model
// response. Field pointers are nil while the field is still unknown.
type ExtractedInfo struct {
	// Symptom is the extracted symptom, nil while unknown.
	Symptom *string `json:"symptom"`

	// Cause is the extracted cause, nil while unknown.
	Cause *string `json:"cause"`

	// Solution is the extracted solution, nil while unknown.
	Solution *string `json:"solution"`

	// IsComplete is true once symptom, cause and solution are all
	// present and non-empty.
	IsComplete bool `json:"isComplete"`

	// MissingFields lists the labels of the still-absent required
	// fields.
	MissingFields []string `json:"missingFields"`
}

// Result is a parsed model response.
type Result struct {
	// Message is the assistant's reply to show the user.
	Message string `json:"message"`

	// ExtractedInfo is the extraction state reported by the model.
	ExtractedInfo ExtractedInfo `json:"extractedInfo"`
}

// Parse extracts a Result from raw model output. Output matching the
// JSON contract is returned verbatim. Anything else degrades to the raw
// text as the message with an empty, incomplete extraction. Parse never
// fails; it is the terminal safety net for model output.
func Parse(raw string) Result {
	var parsed struct {
		Message       *string        `json:"message"`
		ExtractedInfo *ExtractedInfo `json:"extractedInfo"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err == nil && parsed.Message != nil && parsed.ExtractedInfo != nil {
		return Result{
			Message:       *parsed.Message,
			ExtractedInfo: *parsed.ExtractedInfo,
		}
	}

	return Result{
		Message: raw,
		ExtractedInfo: ExtractedInfo{
			IsComplete:    false,
			MissingFields: []string{FieldSymptom, FieldCause, FieldSolution},
		},
	}
}
