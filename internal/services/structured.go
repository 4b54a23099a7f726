package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"hireflow/tracker/internal/validation"
)

// StructuredRequest is one prompt plus the JSON shape the reply must follow.
type StructuredRequest struct {
	Op          string
	Prompt      string
	Schema      *genai.Schema
	WithSearch  bool
	Temperature float32
}

// StructuredGenerator returns the raw text of a single structured completion.
type StructuredGenerator interface {
	GenerateStructured(ctx context.Context, req StructuredRequest) (string, error)
}

// runStructured sends req and decodes the reply into T. It returns either a
// fully validated value or an *AdapterFailure, never both and never a
// partially populated T.
func runStructured[T any](ctx context.Context, gen StructuredGenerator, timeout time.Duration, req StructuredRequest) (result *T, err error) {
	start := time.Now()
	log := logrus.WithField("op", req.Op)

	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = &AdapterFailure{Op: req.Op, Kind: FailureTransport, Err: fmt.Errorf("generator panic: %v", r)}
		}
		if err != nil {
			kind, _ := FailureKindOf(err)
			log.WithError(err).WithField("kind", kind).Error("❌ AI call failed")
			return
		}
		log.WithField("latency", time.Since(start).Round(time.Millisecond)).Info("✅ AI call succeeded")
	}()

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	log.WithField("prompt_chars", len(req.Prompt)).Debug("📝 Sending structured request")

	text, genErr := gen.GenerateStructured(ctx, req)
	if errors.Is(genErr, ErrEmptyCompletion) {
		return nil, &AdapterFailure{Op: req.Op, Kind: FailureMalformed, Err: genErr}
	}
	if genErr != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(genErr, ctxErr) {
			genErr = fmt.Errorf("%w (%v)", ctxErr, genErr)
		}
		return nil, &AdapterFailure{Op: req.Op, Kind: FailureTransport, Err: genErr}
	}

	value, kind, parseErr := decodeStrict[T](text, req.Schema)
	if parseErr != nil {
		return nil, &AdapterFailure{Op: req.Op, Kind: kind, Err: parseErr}
	}
	return value, nil
}

// decodeStrict parses text as a single JSON object conforming to schema.
func decodeStrict[T any](text string, schema *genai.Schema) (*T, FailureKind, error) {
	body := stripCodeFence(text)
	if body == "" {
		return nil, FailureMalformed, errors.New("empty response")
	}

	dec := json.NewDecoder(strings.NewReader(body))
	var fields map[string]json.RawMessage
	if err := dec.Decode(&fields); err != nil {
		return nil, FailureMalformed, fmt.Errorf("response is not a JSON object: %w", err)
	}
	if fields == nil {
		return nil, FailureMalformed, errors.New("response is null")
	}
	if dec.More() {
		return nil, FailureMalformed, errors.New("unexpected data after JSON object")
	}

	if schema != nil {
		for _, key := range schema.Required {
			raw, ok := fields[key]
			if !ok || isJSONNull(raw) {
				return nil, FailureSchema, fmt.Errorf("missing required field %q", key)
			}
		}
		if err := rejectNulls(json.RawMessage(body), schema, "$"); err != nil {
			return nil, FailureSchema, err
		}
	}

	var value T
	if err := json.Unmarshal([]byte(body), &value); err != nil {
		return nil, FailureSchema, fmt.Errorf("field has wrong type: %w", err)
	}
	if err := validation.Struct(value); err != nil {
		return nil, FailureSchema, err
	}
	return &value, "", nil
}

// rejectNulls walks raw alongside schema. json.Unmarshal would turn a null
// list element into a zero value, so nulls are caught here unless the schema
// marks the value nullable. Type mismatches are left to the typed decode.
func rejectNulls(raw json.RawMessage, schema *genai.Schema, path string) error {
	if schema == nil {
		return nil
	}

	switch schema.Type {
	case genai.TypeArray:
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil
		}
		for i, item := range items {
			itemPath := fmt.Sprintf("%s[%d]", path, i)
			if isJSONNull(item) && !nullable(schema.Items) {
				return fmt.Errorf("null element at %s", itemPath)
			}
			if err := rejectNulls(item, schema.Items, itemPath); err != nil {
				return err
			}
		}
	case genai.TypeObject:
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil
		}
		for name, prop := range schema.Properties {
			value, ok := fields[name]
			if !ok {
				continue
			}
			fieldPath := path + "." + name
			if isJSONNull(value) {
				if nullable(prop) {
					continue
				}
				return fmt.Errorf("null value at %s", fieldPath)
			}
			if err := rejectNulls(value, prop, fieldPath); err != nil {
				return err
			}
		}
	}
	return nil
}

func nullable(schema *genai.Schema) bool {
	return schema != nil && schema.Nullable != nil && *schema.Nullable
}

func isJSONNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// stripCodeFence removes a markdown ```json fence the model sometimes adds
// despite the declared MIME type.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
