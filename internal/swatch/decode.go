package swatch

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/AnyUserName/swatchcard/internal/apperr"
)

// requestSchema accepts any string-or-null swatch field and ignores fields
// it does not know, since front ends attach their own ids.
const requestSchema = `{
  "type": "object",
  "properties": {
    "swatches": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "imageUrl":    {"type": ["string", "null"]},
          "styleNumber": {"type": ["string", "null"]},
          "brand":       {"type": ["string", "null"]},
          "fit":         {"type": ["string", "null"]},
          "fabricCode":  {"type": ["string", "null"]},
          "fabrication": {"type": ["string", "null"]},
          "colorName":   {"type": ["string", "null"]},
          "delivery":    {"type": ["string", "null"]},
          "poRef":       {"type": ["string", "null"]}
        }
      }
    },
    "cardInfo": {
      "type": ["object", "null"],
      "properties": {
        "poRef": {"type": ["string", "null"]}
      }
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(requestSchema)

// Decode reads a JSON request, checks it against the request schema and
// unmarshals it. Schema violations are reported as InvalidInput.
func Decode(r io.Reader) (*Request, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read request: %w", err)
	}
	return Parse(data)
}

// Parse is Decode over an in-memory body.
func Parse(data []byte) (*Request, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, apperr.InvalidInput("empty request body")
	}

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, apperr.InvalidInput(fmt.Sprintf("malformed JSON: %v", err))
	}
	if !result.Valid() {
		msgs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			msgs[i] = desc.String()
		}
		return nil, apperr.InvalidInput("request does not match schema: " + strings.Join(msgs, "; "))
	}

	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, apperr.InvalidInput(fmt.Sprintf("malformed JSON: %v", err))
	}
	return &req, nil
}

// LoadFile decodes a request from a JSON file.
func LoadFile(path string) (*Request, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Validate enforces the request-level rules a document needs.
func Validate(req *Request) error {
	if req == nil || len(req.Swatches) == 0 {
		return apperr.InvalidInput("No swatches provided")
	}
	return nil
}

// Warnings lists non-fatal issues: rows that will render a placeholder
// because their image URL cannot be fetched.
func Warnings(req *Request) []string {
	var out []string
	for i, s := range req.Swatches {
		switch {
		case s.ImageURL == "":
			out = append(out, fmt.Sprintf("swatch[%d] %q: no imageUrl", i, s.StyleNumber))
		case !strings.HasPrefix(s.ImageURL, "http"):
			out = append(out, fmt.Sprintf("swatch[%d] %q: imageUrl %q is not an http(s) URL", i, s.StyleNumber, s.ImageURL))
		}
	}
	return out
}
