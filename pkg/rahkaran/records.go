package rahkaran

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Record is a single JSON object exchanged with Rahkaran. Numbers are kept as
// json.Number so large ids survive unchanged.
type Record map[string]any

// RecordSet is a list of records returned by list endpoints.
type RecordSet []Record

// decodeRecord parses a JSON object. An empty body yields an empty record.
func decodeRecord(body []byte) (Record, error) {
	v, err := decodeJSON(body)
	if err != nil {
		return nil, err
	}
	switch t := v.(type) {
	case nil:
		return Record{}, nil
	case map[string]any:
		return Record(t), nil
	default:
		return nil, fmt.Errorf("expected JSON object, got %s", jsonKind(v))
	}
}

// decodeRecordSet parses a JSON array of objects. A single object is returned
// as a one-element set; an empty body yields a nil set.
func decodeRecordSet(body []byte) (RecordSet, error) {
	v, err := decodeJSON(body)
	if err != nil {
		return nil, err
	}
	switch t := v.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return RecordSet{Record(t)}, nil
	case []any:
		out := make(RecordSet, 0, len(t))
		for i, item := range t {
			obj, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("element %d: expected JSON object, got %s", i, jsonKind(item))
			}
			out = append(out, Record(obj))
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected JSON array, got %s", jsonKind(v))
	}
}

func decodeJSON(body []byte) (any, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON value")
	}
	return v, nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case json.Number:
		return "number"
	case bool:
		return "boolean"
	default:
		return "null"
	}
}
