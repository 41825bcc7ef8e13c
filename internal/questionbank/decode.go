// Package questionbank decodes and validates question bank documents.
package questionbank

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/golang/glog"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"sains-quiz-service/internal/domain"
)

const recordSchemaURL = "schema://question-record.json"

// recordSchema describes one element of a question bank document.
var recordSchema = map[string]any{
	"type":     "object",
	"required": []any{"subject", "question", "options", "correct_option"},
	"properties": map[string]any{
		"subject":        map[string]any{"type": "string", "minLength": 1},
		"question":       map[string]any{"type": "string", "minLength": 1},
		"options":        map[string]any{"type": "array", "minItems": 2, "items": map[string]any{"type": "string", "minLength": 1}},
		"correct_option": map[string]any{"type": "integer", "minimum": 0},
		"explanation":    map[string]any{"type": "string"},
	},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(recordSchemaURL, recordSchema); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(recordSchemaURL)
	})
	return compiled, compileErr
}

// Decode parses a JSON array of question records. Elements that fail the
// record schema or the domain invariants are dropped; only a document that is
// not an array is an error.
func Decode(raw []byte) ([]domain.Question, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, fmt.Errorf("decode question bank: %w", err)
	}
	sch, err := schema()
	if err != nil {
		return nil, fmt.Errorf("compile question schema: %w", err)
	}

	questions := make([]domain.Question, 0, len(elements))
	for i, element := range elements {
		q, err := decodeRecord(sch, element)
		if err != nil {
			glog.V(1).Infof("dropping question record %d: %v", i, err)
			continue
		}
		questions = append(questions, q)
	}
	if dropped := len(elements) - len(questions); dropped > 0 {
		glog.V(1).Infof("question bank: kept %d records, dropped %d", len(questions), dropped)
	}
	return questions, nil
}

func decodeRecord(sch *jsonschema.Schema, element json.RawMessage) (domain.Question, error) {
	var parsed any
	if err := json.Unmarshal(element, &parsed); err != nil {
		return domain.Question{}, err
	}
	if err := sch.Validate(parsed); err != nil {
		return domain.Question{}, fmt.Errorf("%w: %v", domain.ErrMalformedQuestion, err)
	}
	var q domain.Question
	if err := json.Unmarshal(element, &q); err != nil {
		return domain.Question{}, err
	}
	if err := q.Validate(); err != nil {
		return domain.Question{}, err
	}
	return q, nil
}
