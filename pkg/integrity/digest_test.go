// Copyright (c) Contributors to the Enact project.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package integrity

import (
	"errors"
	"testing"

	"github.com/enactprotocol/security-go/pkg/document"
	"github.com/enactprotocol/security-go/pkg/keys"
)

func TestDocumentHash(t *testing.T) {
	doc := enactDoc()

	h1, err := DocumentHash(doc, document.OptUseEnactDefaults())
	if err != nil {
		t.Fatal(err)
	}

	if got, want := len(h1), 64; got != want {
		t.Errorf("got digest length %v, want %v", got, want)
	}

	// Pure function of (document, options).
	h2, err := DocumentHash(doc, document.OptUseEnactDefaults())
	if err != nil {
		t.Fatal(err)
	}
	if h1 != h2 {
		t.Errorf("got %v, want %v", h2, h1)
	}

	// The digest is the SHA-256 of the canonical bytes.
	c, err := document.Select(doc, document.OptUseEnactDefaults())
	if err != nil {
		t.Fatal(err)
	}
	b, err := c.Encode()
	if err != nil {
		t.Fatal(err)
	}
	if got, want := h1, keys.HashHex(b); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDocumentHashIgnoresSignatures(t *testing.T) {
	doc := enactDoc()

	h1, err := DocumentHash(doc, document.OptUseEnactDefaults())
	if err != nil {
		t.Fatal(err)
	}

	doc["signatures"] = []any{map[string]any{"signature": "00"}}

	h2, err := DocumentHash(doc, document.OptUseEnactDefaults())
	if err != nil {
		t.Fatal(err)
	}

	if h1 != h2 {
		t.Errorf("got %v, want %v", h2, h1)
	}
}

func TestDocumentHashMissingRequired(t *testing.T) {
	_, err := DocumentHash(document.Document{"name": "t"}, document.OptUseEnactDefaults())
	if want := (&document.RequiredFieldError{Name: "command"}); !errors.Is(err, want) {
		t.Fatalf("got error %v, want %v", err, want)
	}
}
