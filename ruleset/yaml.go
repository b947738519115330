package ruleset

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a YAML document. Unknown keys are rejected.
func ParseYAML(data []byte) (*Document, error) {
	return ReadYAML(bytes.NewReader(data))
}

// ReadYAML decodes a YAML document from r.
func ReadYAML(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}

		return nil, fmt.Errorf("decode yaml rule set document: %w", err)
	}

	return &doc, nil
}

// EncodeYAML encodes doc as YAML.
func EncodeYAML(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode yaml rule set document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
