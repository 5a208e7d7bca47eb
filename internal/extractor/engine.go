// Package extractor turns document images and text into the card format via
// a vision/language model, degrading through a fixed chain of stages: strict
// JSON schema, plain JSON object, free text on the primary model, free text
// on the fallback model, and finally a fixed apology message.
package extractor

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"cargodocs/internal/card"
	"cargodocs/internal/cnh"
	"cargodocs/internal/domain"
	"cargodocs/internal/fiscal"
	"cargodocs/internal/port"
)

// Request is one extraction job. Exactly one of Text or ImageBytes should be
// set; when both are present the image wins.
type Request struct {
	Text          string
	ImageBytes    []byte
	ImageMIME     string
	Prompt        string
	UseStructured bool // attempt the strict-schema CNH stage first
	ExpectJSON    bool // free-text output may still be JSON worth rendering
}

// Engine runs the staged extraction chain over a ChatModel.
type Engine struct {
	client        port.ChatModel
	primaryModel  string
	fallbackModel string
}

// NewEngine wires the chain to a model client. The fallback model may equal
// the primary; it is still tried as a separate stage.
func NewEngine(client port.ChatModel, primaryModel, fallbackModel string) *Engine {
	return &Engine{
		client:        client,
		primaryModel:  primaryModel,
		fallbackModel: fallbackModel,
	}
}

// Extract runs the chain and always returns presentable card text on
// success; the returned text is FallbackMessage when every stage produced
// nothing usable. An error is returned only when no stage could complete a
// model call at all.
func (e *Engine) Extract(ctx context.Context, req Request) (string, error) {
	base, err := e.buildBase(req)
	if err != nil {
		return "", err
	}

	if req.UseStructured {
		if text, ok := e.structured(ctx, base, req.Prompt); ok {
			return text, nil
		}
	}

	out, err := e.freeText(ctx, base, req.Prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}

	if req.ExpectJSON && strings.HasPrefix(strings.TrimSpace(out), "{") {
		var rec cnh.Record
		if jsonErr := json.Unmarshal([]byte(strings.TrimSpace(out)), &rec); jsonErr == nil {
			out = rec.CardText()
		}
	}

	out = card.Sanitize(out)
	if out == "" {
		return FallbackMessage, nil
	}
	return out, nil
}

// Verify runs the narrow second pass over a license image. It is advisory:
// any failure degrades to the all-absent result instead of erroring.
func (e *Engine) Verify(ctx context.Context, imageBytes []byte, imageMIME string) cnh.Verification {
	base, err := e.buildBase(Request{ImageBytes: imageBytes, ImageMIME: imageMIME})
	if err != nil {
		log.Printf("extractor.Engine: verification skipped: %v", err)
		return cnh.AllAbsent()
	}

	chat := base
	chat.Model = e.primaryModel
	chat.System = systemVerify
	chat.Prompt = PromptVerify
	chat.Contract = port.ContractText

	out, err := e.client.Complete(ctx, chat)
	if err != nil {
		log.Printf("extractor.Engine: verification on %s failed: %v", e.primaryModel, err)
		chat.Model = e.fallbackModel
		out, err = e.client.Complete(ctx, chat)
		if err != nil {
			log.Printf("extractor.Engine: verification on %s failed: %v", e.fallbackModel, err)
			return cnh.AllAbsent()
		}
	}
	return cnh.ParseVerification(out)
}

// ExtractKey asks only for the 44-digit access key. An empty string means no
// key was found, which is an expected outcome; the error path is reserved
// for model calls that could not complete.
func (e *Engine) ExtractKey(ctx context.Context, req Request) (string, error) {
	base, err := e.buildBase(req)
	if err != nil {
		return "", err
	}

	out, err := e.freeText(ctx, base, PromptCTEKey)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExtractionFailed, err)
	}
	return fiscal.NormalizeKey(out), nil
}

// buildBase validates the input and prepares a ChatRequest skeleton with the
// image encoded as a data URI or the text set, model and prompt left blank.
func (e *Engine) buildBase(req Request) (port.ChatRequest, error) {
	if len(req.ImageBytes) == 0 && strings.TrimSpace(req.Text) == "" {
		return port.ChatRequest{}, domain.ErrMissingInput
	}

	var chat port.ChatRequest
	if len(req.ImageBytes) > 0 {
		if !strings.HasPrefix(req.ImageMIME, "image/") {
			return port.ChatRequest{}, fmt.Errorf("%w: %q", domain.ErrInvalidImageMIME, req.ImageMIME)
		}
		chat.ImageDataURL = "data:" + req.ImageMIME + ";base64," + base64.StdEncoding.EncodeToString(req.ImageBytes)
	} else {
		chat.Text = req.Text
	}
	return chat, nil
}

// structured runs the strict-schema stage on the primary model, retrying
// once with a plain JSON object contract. Success requires a card that
// passes the emptiness heuristic; an all-dash card falls through to the
// free-text stages.
func (e *Engine) structured(ctx context.Context, base port.ChatRequest, prompt string) (string, bool) {
	chat := base
	chat.Model = e.primaryModel
	chat.System = systemExpectJSON
	chat.Prompt = prompt
	chat.Contract = port.ContractSchema
	chat.Schema = cnhCardSchema

	out, err := e.client.Complete(ctx, chat)
	if err != nil {
		log.Printf("extractor.Engine: schema stage failed, retrying as json_object: %v", err)
		chat.Contract = port.ContractJSONObject
		chat.Schema = nil
		out, err = e.client.Complete(ctx, chat)
		if err != nil {
			log.Printf("extractor.Engine: json_object stage failed: %v", err)
			return "", false
		}
	}

	var rec cnh.Record
	if err := json.Unmarshal([]byte(card.Sanitize(out)), &rec); err != nil {
		log.Printf("extractor.Engine: structured output not valid JSON: %v", err)
		return "", false
	}

	text := card.Sanitize(rec.CardText())
	if text == "" || card.IsEmpty(text) {
		log.Printf("extractor.Engine: structured stage produced an empty card, falling through")
		return "", false
	}
	return text, true
}

// freeText runs a plain completion on the primary model and, on error, on
// the fallback model. Both errors are joined for the caller.
func (e *Engine) freeText(ctx context.Context, base port.ChatRequest, prompt string) (string, error) {
	chat := base
	chat.Model = e.primaryModel
	chat.System = systemExpectCard
	chat.Prompt = prompt
	chat.Contract = port.ContractText

	out, err := e.client.Complete(ctx, chat)
	if err == nil {
		return out, nil
	}
	log.Printf("extractor.Engine: %s failed: %v", e.primaryModel, err)

	chat.Model = e.fallbackModel
	out, fbErr := e.client.Complete(ctx, chat)
	if fbErr == nil {
		return out, nil
	}
	log.Printf("extractor.Engine: %s failed: %v", e.fallbackModel, fbErr)
	return "", fmt.Errorf("%s: %v; %s: %v", e.primaryModel, err, e.fallbackModel, fbErr)
}
