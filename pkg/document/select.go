// Copyright (c) Contributors to the Enact project.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package document

import (
	"errors"
	"fmt"
	"sort"
)

var errMissingRequired = errors.New("required field missing or empty")

// RequiredFieldError records a required field that was selected for signing
// but absent or empty on the document.
type RequiredFieldError struct {
	Name string // Field name.
}

func (e *RequiredFieldError) Error() string {
	if e.Name == "" {
		return "required field missing or empty"
	}
	return fmt.Sprintf("required field %q missing or empty", e.Name)
}

// Is compares e against target. If target is a RequiredFieldError and matches
// e or target has a zero value Name, true is returned.
func (e *RequiredFieldError) Is(target error) bool {
	t, ok := target.(*RequiredFieldError)
	if !ok {
		return false
	}
	return e.Name == t.Name || t.Name == ""
}

// selectOpts accumulates configured selection options.
type selectOpts struct {
	useEnactDefaults bool
	includeFields    []string
	excludeFields    []string
	additionalFields []string
}

// SelectOpt are used to configure field selection.
type SelectOpt func(*selectOpts) error

// OptUseEnactDefaults selects the Enact tool manifest default field set
// instead of the generic default set.
func OptUseEnactDefaults() SelectOpt {
	return func(so *selectOpts) error {
		so.useEnactDefaults = true
		return nil
	}
}

// OptIncludeFields selects exactly the named fields, overriding the default
// set entirely. This may be called multiple times to accumulate names.
func OptIncludeFields(names ...string) SelectOpt {
	return func(so *selectOpts) error {
		so.includeFields = append(so.includeFields, names...)
		return nil
	}
}

// OptExcludeFields removes the named fields from the selected set after
// defaults or included fields are resolved.
func OptExcludeFields(names ...string) SelectOpt {
	return func(so *selectOpts) error {
		so.excludeFields = append(so.excludeFields, names...)
		return nil
	}
}

// OptAdditionalCriticalFields appends the named fields to the default set.
// Ignored when OptIncludeFields is in effect.
func OptAdditionalCriticalFields(names ...string) SelectOpt {
	return func(so *selectOpts) error {
		so.additionalFields = append(so.additionalFields, names...)
		return nil
	}
}

// activeDefaults returns the default field set in effect for so.
func (so *selectOpts) activeDefaults() []FieldConfig {
	if so.useEnactDefaults {
		return EnactDefaultFields()
	}
	return GenericDefaultFields()
}

// fieldNames resolves the set of field names selected by so, sorted in
// ascending byte-lexicographic order. The signatures field is never selected.
func (so *selectOpts) fieldNames() []string {
	var names []string
	if len(so.includeFields) > 0 {
		names = append(names, so.includeFields...)
	} else {
		for _, f := range so.activeDefaults() {
			if f.SecurityCritical {
				names = append(names, f.Name)
			}
		}
		names = append(names, so.additionalFields...)
	}

	excluded := make(map[string]bool, len(so.excludeFields)+1)
	for _, name := range so.excludeFields {
		excluded[name] = true
	}
	excluded[FieldSignatures] = true

	seen := make(map[string]bool, len(names))
	selected := make([]string, 0, len(names))
	for _, name := range names {
		if excluded[name] || seen[name] {
			continue
		}
		seen[name] = true
		selected = append(selected, name)
	}

	sort.Strings(selected)
	return selected
}

// resolveSelectOpts applies opts and returns the accumulated configuration.
func resolveSelectOpts(opts []SelectOpt) (*selectOpts, error) {
	so := &selectOpts{}
	for _, opt := range opts {
		if err := opt(so); err != nil {
			return nil, err
		}
	}
	return so, nil
}

// SelectedFields returns the sorted field names that the configuration
// described by opts would sign, without reference to any document.
func SelectedFields(opts ...SelectOpt) ([]string, error) {
	so, err := resolveSelectOpts(opts)
	if err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}
	return so.fieldNames(), nil
}

// Select projects d to its canonical ordered mapping according to opts.
//
// Fields that are required in the active default set and selected for signing
// must be present with non-empty values; otherwise an error wrapping a
// RequiredFieldError is returned. Selected fields that are absent or empty on
// d are silently omitted from the projection.
func Select(d Document, opts ...SelectOpt) (*Canonical, error) {
	so, err := resolveSelectOpts(opts)
	if err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}

	names := so.fieldNames()

	selected := make(map[string]bool, len(names))
	for _, name := range names {
		selected[name] = true
	}

	// Required fields are validated only when they remain in the selected set.
	for _, f := range so.activeDefaults() {
		if !f.Required || !selected[f.Name] {
			continue
		}
		if v, ok := d[f.Name]; !ok || isEmptyValue(v) {
			return nil, fmt.Errorf("document: %w", &RequiredFieldError{Name: f.Name})
		}
	}

	c := newCanonical(len(names))
	for _, name := range names {
		v, ok := d[name]
		if !ok || isEmptyValue(v) {
			continue
		}
		c.insert(name, v)
	}

	return c, nil
}
