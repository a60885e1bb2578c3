// Copyright (c) Contributors to the Enact project.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package integrity

import (
	"testing"
	"time"

	"github.com/enactprotocol/security-go/pkg/document"
	"github.com/enactprotocol/security-go/pkg/keys"
)

// Well-known secp256k1 test vectors: the public points for the scalars 1
// and 2.
const (
	testPriv1 = "0000000000000000000000000000000000000000000000000000000000000001"
	testPub1  = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"

	testPriv2 = "0000000000000000000000000000000000000000000000000000000000000002"
	testPub2  = "02c6047f9441ed7d6d3045406e95c07cd85c778e4b8cef3ca7abac09b95c709ee5"
)

// fixedTime returns a fixed time value, useful for ensuring tests are
// deterministic.
func fixedTime() time.Time {
	return time.Unix(1504657553, 0)
}

// testKeyPair returns a fresh key pair.
func testKeyPair(t *testing.T) keys.KeyPair {
	t.Helper()

	kp, err := keys.Generate()
	if err != nil {
		t.Fatal(err)
	}
	return kp
}

// enactDoc returns a minimal Enact tool manifest.
func enactDoc() document.Document {
	return document.Document{
		"name":        "t",
		"description": "d",
		"command":     "echo",
		"enact":       "1.0.0",
	}
}
