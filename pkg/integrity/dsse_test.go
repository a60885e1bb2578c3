// Copyright (c) Contributors to the Enact project.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package integrity

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/enactprotocol/security-go/pkg/document"
)

func TestSignDSSERoundTrip(t *testing.T) {
	doc := enactDoc()

	env, err := SignDSSE(context.Background(), doc, testPriv1, OptSignEnactDefaults())
	if err != nil {
		t.Fatal(err)
	}

	if !IsDSSE(bytes.NewReader(env)) {
		t.Error("envelope not detected as DSSE")
	}

	payload, err := VerifyDSSE(context.Background(), env, testPub1)
	if err != nil {
		t.Fatal(err)
	}

	c, err := document.Select(doc, document.OptUseEnactDefaults())
	if err != nil {
		t.Fatal(err)
	}
	want, err := c.Encode()
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(payload, want) {
		t.Errorf("got payload %s, want %s", payload, want)
	}
}

func TestVerifyDSSEWrongKey(t *testing.T) {
	env, err := SignDSSE(context.Background(), enactDoc(), testPriv1, OptSignEnactDefaults())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := VerifyDSSE(context.Background(), env, testPub2); err == nil {
		t.Error("got nil error, want verification failure")
	}
}

func TestVerifyDSSEMultipleKeys(t *testing.T) {
	env, err := SignDSSE(context.Background(), enactDoc(), testPriv2, OptSignEnactDefaults())
	if err != nil {
		t.Fatal(err)
	}

	// One of the supplied verifiers accepting the envelope is sufficient.
	if _, err := VerifyDSSE(context.Background(), env, testPub1, testPub2); err != nil {
		t.Errorf("got error %v, want nil", err)
	}
}

func TestIsDSSE(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{
			name:  "WrongPayloadType",
			input: `{"payloadType":"application/vnd.in-toto+json","payload":"","signatures":[]}`,
		},
		{
			name:  "NotJSON",
			input: "-----BEGIN PUBLIC KEY-----",
		},
		{
			name:  "DocumentPayloadType",
			input: `{"payloadType":"application/vnd.enact.document+json","payload":"","signatures":[]}`,
			want:  true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got, want := IsDSSE(strings.NewReader(tt.input)), tt.want; got != want {
				t.Errorf("got %v, want %v", got, want)
			}
		})
	}
}
