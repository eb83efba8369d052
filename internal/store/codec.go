package store

import (
	"github.com/goccy/go-json"

	"hut/internal/domain"
)

// Encode renders the document the way it is kept on disk: 2-space indented JSON.
func Encode(doc *domain.Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// Decode parses and normalizes a document. Empty input is an empty document.
func Decode(data []byte) (*domain.Document, error) {
	doc := &domain.Document{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, doc); err != nil {
			return nil, err
		}
	}
	doc.Normalize()
	return doc, nil
}

// Clone returns a deep copy that shares no memory with doc.
func Clone(doc *domain.Document) (*domain.Document, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	out := &domain.Document{}
	if err := json.Unmarshal(data, out); err != nil {
		return nil, err
	}
	return out, nil
}
