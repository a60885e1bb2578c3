// Copyright (c) Contributors to the Enact project.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

// Package document describes Enact documents and their projection to a
// canonical, deterministic byte representation suitable for signing.
package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/blang/semver/v4"
)

// FieldSignatures is the reserved field carrying signatures on a document. It
// is never included in canonical output.
const FieldSignatures = "signatures"

// Document is an open mapping from field names to structured values. Values
// may be strings, numbers, booleans, nil, slices, nested mappings, or
// json.RawMessage (passed through verbatim when serialized).
type Document map[string]any

var (
	errNotAnObject = errors.New("document is not a JSON object")
)

// FromJSON parses b into a Document. Numbers are preserved as json.Number so
// their canonical form matches the input.
func FromJSON(b []byte) (Document, error) {
	var v any
	if err := unmarshalWithNumbers(b, &v); err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}

	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("document: %w", errNotAnObject)
	}
	return Document(m), nil
}

// isEmptyValue reports whether v is considered empty for the purposes of
// canonical projection: nil, the empty string, an empty sequence, or a
// mapping with zero keys.
func isEmptyValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case []any:
		return len(val) == 0
	case map[string]any:
		return len(val) == 0
	case json.RawMessage:
		return rawIsEmpty(val)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// rawIsEmpty reports whether raw JSON b encodes null, "", [] or {}.
func rawIsEmpty(b json.RawMessage) bool {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return false
	}
	return isEmptyValue(v)
}

// ManifestInvalidError records a reason an Enact tool manifest failed lint
// validation.
type ManifestInvalidError struct {
	Field string // Field name.
	Err   error  // Wrapped error.
}

func (e *ManifestInvalidError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("manifest field %q invalid", e.Field)
	}
	return fmt.Sprintf("manifest field %q invalid: %v", e.Field, e.Err)
}

func (e *ManifestInvalidError) Unwrap() error {
	return e.Err
}

// Is compares e against target. If target is a ManifestInvalidError and
// matches e or target has a zero value Field, true is returned.
func (e *ManifestInvalidError) Is(target error) bool {
	t, ok := target.(*ManifestInvalidError)
	if !ok {
		return false
	}
	return e.Field == t.Field || t.Field == ""
}

var errNotSemver = errors.New("not a semantic version")

// ValidateManifest checks that d carries the required Enact tool manifest
// fields with non-empty values, and that the enact and version fields parse
// as semantic versions when present. It is a lint check, not a signing
// precondition.
func ValidateManifest(d Document) error {
	for _, f := range EnactDefaultFields() {
		if !f.Required {
			continue
		}
		if v, ok := d[f.Name]; !ok || isEmptyValue(v) {
			return &ManifestInvalidError{Field: f.Name, Err: errMissingRequired}
		}
	}

	for _, name := range []string{"enact", "version"} {
		v, ok := d[name]
		if !ok || isEmptyValue(v) {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return &ManifestInvalidError{Field: name, Err: errNotSemver}
		}
		if _, err := semver.Parse(s); err != nil {
			return &ManifestInvalidError{Field: name, Err: fmt.Errorf("%w: %v", errNotSemver, err)}
		}
	}

	return nil
}
