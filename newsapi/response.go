package newsapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnexpectedShape is returned for bodies that are not an item list, envelope, single item or error
	ErrUnexpectedShape = errors.New("unexpected response shape")

	// ErrEmptyResponse is returned when a well-formed response carries no items
	ErrEmptyResponse = errors.New("response contained no articles")
)

// StatusError is a non-2xx reply from the generator
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API returned %d: %s", e.Code, e.Body)
}

// APIError is an explicit {"error": ...} reply from the generator
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return "API error: " + e.Message
}

// RawItem is one article-like object as sent by the upstream, before normalization
type RawItem map[string]any

// Kind tags the decoded response variant
type Kind int

const (
	KindItems Kind = iota + 1
	KindEnvelope
	KindSingle
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindItems:
		return "items"
	case KindEnvelope:
		return "envelope"
	case KindSingle:
		return "single"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Response is the decoded upstream body. Items is set for the three item
// kinds, Error for KindError.
type Response struct {
	Kind  Kind
	Items []RawItem
	Error string
}

// DecodeResponse classifies and decodes a generator response body
func DecodeResponse(body []byte) (Response, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return Response{}, fmt.Errorf("%w: empty body", ErrUnexpectedShape)
	}

	switch trimmed[0] {
	case '[':
		items, err := decodeItems(trimmed)
		if err != nil {
			return Response{}, err
		}
		return Response{Kind: KindItems, Items: items}, nil

	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return Response{}, fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
		}

		if raw, ok := obj["error"]; ok && !isFalsy(raw) {
			return Response{Kind: KindError, Error: errorMessage(raw)}, nil
		}

		if raw, ok := obj["articles"]; ok {
			if isNull(raw) {
				return Response{Kind: KindEnvelope}, nil
			}
			items, err := decodeItems(raw)
			if err != nil {
				return Response{}, err
			}
			return Response{Kind: KindEnvelope, Items: items}, nil
		}

		var item RawItem
		if err := json.Unmarshal(trimmed, &item); err != nil {
			return Response{}, fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
		}
		return Response{Kind: KindSingle, Items: []RawItem{item}}, nil

	default:
		return Response{}, fmt.Errorf("%w: body starts with %q", ErrUnexpectedShape, trimmed[0])
	}
}

func decodeItems(raw []byte) ([]RawItem, error) {
	var items []RawItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
	}
	for i, item := range items {
		if item == nil {
			return nil, fmt.Errorf("%w: item %d is null", ErrUnexpectedShape, i)
		}
	}
	return items, nil
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

// isFalsy mirrors the upstream client's truthiness check on the error field
func isFalsy(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "null", "false", `""`, "0":
		return true
	}
	return false
}

func errorMessage(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Message != "" {
		return obj.Message
	}
	return strings.TrimSpace(string(raw))
}
