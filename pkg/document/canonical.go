// Copyright (c) Contributors to the Enact project.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package document

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Canonical is the ordered projection of a document to its signed fields. Key
// order is fixed at insertion time; Encode serializes keys in that order.
type Canonical struct {
	names  []string
	values map[string]any
}

// newCanonical returns an empty canonical mapping with capacity for n fields.
func newCanonical(n int) *Canonical {
	return &Canonical{
		names:  make([]string, 0, n),
		values: make(map[string]any, n),
	}
}

// insert appends name to the key order and records its value. Duplicate names
// keep the first inserted value.
func (c *Canonical) insert(name string, value any) {
	if _, ok := c.values[name]; ok {
		return
	}
	c.names = append(c.names, name)
	c.values[name] = value
}

// Fields returns the field names in serialization order.
func (c *Canonical) Fields() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

// Value returns the value recorded for name.
func (c *Canonical) Value(name string) (any, bool) {
	v, ok := c.values[name]
	return v, ok
}

// Len returns the number of fields in the mapping.
func (c *Canonical) Len() int {
	return len(c.names)
}

// Encode serializes the mapping to canonical UTF-8 JSON bytes: a single
// object with keys in insertion order, no insignificant whitespace, and no
// HTML escaping. json.RawMessage values are compacted and passed through
// verbatim; all other values are encoded with encoding/json.
func (c *Canonical) Encode() ([]byte, error) {
	b := &bytes.Buffer{}
	b.WriteByte('{')

	for i, name := range c.names {
		if i > 0 {
			b.WriteByte(',')
		}
		if err := encodeValue(b, name); err != nil {
			return nil, fmt.Errorf("document: field name %q: %w", name, err)
		}
		b.WriteByte(':')
		if err := encodeValue(b, c.values[name]); err != nil {
			return nil, fmt.Errorf("document: field %q: %w", name, err)
		}
	}

	b.WriteByte('}')
	return b.Bytes(), nil
}

// MarshalJSON implements json.Marshaler, preserving key order.
func (c *Canonical) MarshalJSON() ([]byte, error) {
	return c.Encode()
}

// encodeValue writes v to b as compact JSON without HTML escaping.
func encodeValue(b *bytes.Buffer, v any) error {
	if raw, ok := v.(json.RawMessage); ok {
		return json.Compact(b, raw)
	}

	enc := json.NewEncoder(b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}

	// Encode appends a newline after every value.
	b.Truncate(b.Len() - 1)
	return nil
}

// unmarshalWithNumbers decodes b into v, preserving numbers as json.Number.
func unmarshalWithNumbers(b []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	return dec.Decode(v)
}
