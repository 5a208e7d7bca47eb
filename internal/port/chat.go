package port

import (
	"context"
	"encoding/json"
)

// ResponseContract selects how strictly the model output is constrained.
type ResponseContract int

const (
	// ContractText requests free-form text.
	ContractText ResponseContract = iota
	// ContractJSONObject requests any valid JSON object.
	ContractJSONObject
	// ContractSchema requests output validated against ChatRequest.Schema.
	ContractSchema
)

// ChatRequest carries one call to the vision/language model.
type ChatRequest struct {
	Model        string
	System       string
	Prompt       string
	Text         string // appended to the prompt for text-based extraction
	ImageDataURL string // data URI; mutually exclusive with Text
	Contract     ResponseContract
	Schema       json.RawMessage // required when Contract == ContractSchema
}

// ChatModel abstracts the external model provider: given a prompt and an
// image or text, return the raw completion text.
type ChatModel interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}
