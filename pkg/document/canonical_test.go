// Copyright (c) Contributors to the Enact project.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package document

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
)

func TestCanonicalEncode(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		opts []SelectOpt
	}{
		{
			name: "EnactMinimal",
			doc: Document{
				"name":        "t",
				"description": "d",
				"command":     "echo",
				"enact":       "1.0.0",
			},
			opts: []SelectOpt{OptUseEnactDefaults()},
		},
		{
			name: "NestedValues",
			doc: Document{
				"name":        "t",
				"description": "d",
				"command":     "echo",
				"inputSchema": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"b": 1,
						"a": 2,
					},
				},
			},
			opts: []SelectOpt{OptIncludeFields("name", "command", "inputSchema")},
		},
		{
			name: "Escaping",
			doc: Document{
				"name":    "line1\nline2",
				"command": `say "hi" & <wave>`,
			},
			opts: []SelectOpt{OptIncludeFields("name", "command")},
		},
		{
			name: "NumbersAndSequences",
			doc: Document{
				"annotations": []any{"a", "b"},
				"timeout":     30,
				"version":     "1.2.3",
			},
			opts: []SelectOpt{OptIncludeFields("annotations", "timeout", "version")},
		},
		{
			name: "RawMessage",
			doc: Document{
				"name":        "raw",
				"inputSchema": json.RawMessage(`{"required":["x"],"type":"object"}`),
			},
			opts: []SelectOpt{OptIncludeFields("name", "inputSchema")},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			c, err := Select(tt.doc, tt.opts...)
			if err != nil {
				t.Fatal(err)
			}

			b, err := c.Encode()
			if err != nil {
				t.Fatal(err)
			}

			g := goldie.New(t, goldie.WithTestNameForDir(true))
			g.Assert(t, tt.name, b)
		})
	}
}

func TestCanonicalDeterminism(t *testing.T) {
	doc := Document{
		"name":        "t",
		"description": "d",
		"command":     "echo",
		"enact":       "1.0.0",
		"inputSchema": map[string]any{"type": "object"},
	}

	c1, err := Select(doc, OptUseEnactDefaults())
	if err != nil {
		t.Fatal(err)
	}
	b1, err := c1.Encode()
	if err != nil {
		t.Fatal(err)
	}

	// Re-encoding the same projection, and re-projecting the same document,
	// must both be byte-stable.
	b2, err := c1.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(b1, b2) {
		t.Errorf("re-encode mismatch: %s != %s", b1, b2)
	}

	c2, err := Select(doc, OptUseEnactDefaults())
	if err != nil {
		t.Fatal(err)
	}
	b3, err := c2.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(b1, b3) {
		t.Errorf("re-project mismatch: %s != %s", b1, b3)
	}
}

func TestCanonicalIdempotence(t *testing.T) {
	doc := Document{
		"name":        "t",
		"description": "d",
		"command":     "echo",
	}

	c, err := Select(doc, OptUseEnactDefaults())
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Encode()
	if err != nil {
		t.Fatal(err)
	}

	// Projecting the projected mapping again yields the same bytes.
	reparsed, err := FromJSON(b)
	if err != nil {
		t.Fatal(err)
	}

	c2, err := Select(reparsed, OptUseEnactDefaults())
	if err != nil {
		t.Fatal(err)
	}
	b2, err := c2.Encode()
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(b, b2) {
		t.Errorf("got %s, want %s", b2, b)
	}
}

func TestCanonicalMarshalJSON(t *testing.T) {
	doc := Document{
		"name":    "t",
		"command": "echo",
	}

	c, err := Select(doc, OptIncludeFields("name", "command"))
	if err != nil {
		t.Fatal(err)
	}

	b, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := string(b), `{"command":"echo","name":"t"}`; got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}
