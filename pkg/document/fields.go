// Copyright (c) Contributors to the Enact project.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package document

// FieldConfig describes how a single document field participates in signing.
type FieldConfig struct {
	Name             string // Field name.
	Required         bool   // Field must be present with a non-empty value when selected.
	SecurityCritical bool   // Field is included in the default signed set.
	Description      string // Human-readable description.
}

// enactDefaults is the built-in field set for Enact tool manifests.
var enactDefaults = []FieldConfig{
	{Name: "annotations", SecurityCritical: true, Description: "Behavioral annotations"},
	{Name: "command", Required: true, SecurityCritical: true, Description: "Command executed by the tool"},
	{Name: "description", Required: true, SecurityCritical: true, Description: "Tool description"},
	{Name: "enact", SecurityCritical: true, Description: "Enact protocol version"},
	{Name: "env", SecurityCritical: true, Description: "Environment variable declarations"},
	{Name: "from", SecurityCritical: true, Description: "Container image reference"},
	{Name: "inputSchema", SecurityCritical: true, Description: "JSON Schema for tool inputs"},
	{Name: "name", Required: true, SecurityCritical: true, Description: "Tool name"},
	{Name: "timeout", SecurityCritical: true, Description: "Execution timeout"},
	{Name: "version", SecurityCritical: true, Description: "Tool version"},
}

// genericDefaults is the built-in field set for generic records.
var genericDefaults = []FieldConfig{
	{Name: "id", Required: true, SecurityCritical: true, Description: "Record identifier"},
	{Name: "content", Required: true, SecurityCritical: true, Description: "Record content"},
	{Name: "timestamp", Required: true, SecurityCritical: true, Description: "Record timestamp"},
	{Name: "metadata", Description: "Auxiliary metadata"},
}

// EnactDefaultFields returns the built-in field set for Enact tool manifests.
func EnactDefaultFields() []FieldConfig {
	fs := make([]FieldConfig, len(enactDefaults))
	copy(fs, enactDefaults)
	return fs
}

// GenericDefaultFields returns the built-in field set for generic records.
func GenericDefaultFields() []FieldConfig {
	fs := make([]FieldConfig, len(genericDefaults))
	copy(fs, genericDefaults)
	return fs
}
