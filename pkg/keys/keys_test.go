// Copyright (c) Contributors to the Enact project.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package keys

import (
	"errors"
	"strings"
	"testing"
)

// Well-known secp256k1 test vectors: the public points for the scalars 1
// and 2.
const (
	testPriv1 = "0000000000000000000000000000000000000000000000000000000000000001"
	testPub1  = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"

	testPriv2 = "0000000000000000000000000000000000000000000000000000000000000002"
	testPub2  = "02c6047f9441ed7d6d3045406e95c07cd85c778e4b8cef3ca7abac09b95c709ee5"

	// The group order is not a valid scalar.
	testPrivOrder = "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"
)

func TestGenerate(t *testing.T) {
	kp, err := Generate()
	if err != nil {
		t.Fatal(err)
	}

	if got, want := len(kp.PrivateKey), 2*PrivateKeySize; got != want {
		t.Errorf("got private key length %v, want %v", got, want)
	}
	if got, want := len(kp.PublicKey), 2*PublicKeySize; got != want {
		t.Errorf("got public key length %v, want %v", got, want)
	}

	pub, err := DerivePublic(kp.PrivateKey)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := pub, kp.PublicKey; got != want {
		t.Errorf("got derived key %v, want %v", got, want)
	}
}

func TestDerivePublic(t *testing.T) {
	tests := []struct {
		name      string
		privHex   string
		wantError error
		wantPub   string
	}{
		{
			name:    "ScalarOne",
			privHex: testPriv1,
			wantPub: testPub1,
		},
		{
			name:    "ScalarTwo",
			privHex: testPriv2,
			wantPub: testPub2,
		},
		{
			name:    "UpperCaseHex",
			privHex: strings.ToUpper(testPriv1),
			wantPub: testPub1,
		},
		{
			name:      "Zero",
			privHex:   strings.Repeat("0", 64),
			wantError: ErrInvalidKey,
		},
		{
			name:      "GroupOrder",
			privHex:   testPrivOrder,
			wantError: ErrInvalidKey,
		},
		{
			name:      "ShortScalar",
			privHex:   "0101",
			wantError: ErrInvalidKey,
		},
		{
			name:      "NotHex",
			privHex:   strings.Repeat("zz", 32),
			wantError: ErrInvalidKey,
		},
		{
			name:      "Whitespace",
			privHex:   " " + testPriv1,
			wantError: ErrInvalidKey,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			pub, err := DerivePublic(tt.privHex)
			if got, want := err, tt.wantError; !errors.Is(got, want) {
				t.Fatalf("got error %v, want %v", got, want)
			}

			if err == nil {
				if got, want := pub, tt.wantPub; got != want {
					t.Errorf("got public key %v, want %v", got, want)
				}
			}
		})
	}
}

func TestFromPrivate(t *testing.T) {
	kp, err := FromPrivate(testPriv1)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := kp.PrivateKey, testPriv1; got != want {
		t.Errorf("got private key %v, want %v", got, want)
	}
	if got, want := kp.PublicKey, testPub1; got != want {
		t.Errorf("got public key %v, want %v", got, want)
	}

	if _, err := FromPrivate("not hex"); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("got error %v, want %v", err, ErrInvalidKey)
	}
}
