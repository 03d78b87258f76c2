package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ImagesMetadata is a per-filename metadata dictionary that preserves
// insertion order on JSON encode. The static publisher assigns integer
// indices by walking this order, so the encoding must match construction
// order exactly rather than Go's usual (and encoding/json's) sorted-key
// map output.
type ImagesMetadata struct {
	order []string
	data  map[string]map[string]any
}

// NewImagesMetadata returns an empty ordered metadata map.
func NewImagesMetadata() *ImagesMetadata {
	return &ImagesMetadata{data: make(map[string]map[string]any)}
}

// Set records fields for name, appending name to the iteration order on
// first insertion. A later Set for an existing name updates its fields in
// place without moving its position.
func (m *ImagesMetadata) Set(name string, fields map[string]any) {
	if _, exists := m.data[name]; !exists {
		m.order = append(m.order, name)
	}
	m.data[name] = fields
}

// Get returns the fields recorded for name.
func (m *ImagesMetadata) Get(name string) (map[string]any, bool) {
	fields, ok := m.data[name]
	return fields, ok
}

// Names returns the filenames in insertion order.
func (m *ImagesMetadata) Names() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Len returns the number of entries.
func (m *ImagesMetadata) Len() int { return len(m.order) }

// MarshalJSON emits a JSON object whose keys appear in insertion order.
func (m *ImagesMetadata) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, name := range m.order {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(name)
		if err != nil {
			return nil, fmt.Errorf("marshal images_metadata key %q: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := json.Marshal(m.data[name])
		if err != nil {
			return nil, fmt.Errorf("marshal images_metadata value for %q: %w", name, err)
		}
		buf.Write(val)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON preserves key order as it appears in the input document.
func (m *ImagesMetadata) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("images_metadata: expected JSON object")
	}

	m.order = nil
	m.data = make(map[string]map[string]any)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("images_metadata: expected string key")
		}

		var fields map[string]any
		if err := dec.Decode(&fields); err != nil {
			return fmt.Errorf("images_metadata: decode %q: %w", key, err)
		}

		m.Set(key, fields)
	}

	return nil
}
