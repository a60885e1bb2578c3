// Copyright (c) Contributors to the Enact project.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package integrity

import (
	"errors"
	"testing"

	"github.com/enactprotocol/security-go/pkg/document"
	"github.com/enactprotocol/security-go/pkg/policy"
)

// signEnact signs the enact-defaults projection of doc with privHex.
func signEnact(t *testing.T, doc document.Document, privHex string) Signature {
	t.Helper()

	sig, err := Sign(doc, privHex, OptSignEnactDefaults(), OptSignWithTime(fixedTime))
	if err != nil {
		t.Fatal(err)
	}
	return sig
}

func TestVerifyRoundTrip(t *testing.T) {
	doc := enactDoc()
	sig := signEnact(t, doc, testPriv1)

	if !Verify(doc, sig, OptVerifyEnactDefaults(), OptVerifyWithTrusted(testPub1)) {
		t.Error("got false, want true")
	}
}

func TestVerifyTamper(t *testing.T) {
	doc := enactDoc()
	sig := signEnact(t, doc, testPriv1)

	doc["command"] = "echo pwned"

	if Verify(doc, sig, OptVerifyEnactDefaults(), OptVerifyWithTrusted(testPub1)) {
		t.Error("got true, want false")
	}
}

func TestVerifyUntrustedSigner(t *testing.T) {
	doc := enactDoc()
	sig := signEnact(t, doc, testPriv1)

	// The signer's key is not in the trusted set; the fallback scan over the
	// other trusted keys must not succeed either.
	if Verify(doc, sig, OptVerifyEnactDefaults(), OptVerifyWithTrusted(testPub2)) {
		t.Error("got true, want false")
	}
}

func TestVerifyEmptyTrustSet(t *testing.T) {
	doc := enactDoc()
	sig := signEnact(t, doc, testPriv1)

	// Fail closed: with no trusted keys, even a cryptographically valid
	// signature is rejected.
	if Verify(doc, sig, OptVerifyEnactDefaults()) {
		t.Error("got true, want false")
	}
}

func TestVerifyFieldSelection(t *testing.T) {
	doc := document.Document{"name": "a", "command": "c"}

	sig, err := Sign(doc, testPriv1, OptSignFields("command"))
	if err != nil {
		t.Fatal(err)
	}

	verify := func(d document.Document, opts ...VerifierOpt) bool {
		opts = append(opts, OptVerifyWithTrusted(testPub1))
		return Verify(d, sig, opts...)
	}

	// Metadata changes outside the signed set are tolerated.
	doc["name"] = "b"
	if !verify(doc, OptVerifyFields("command")) {
		t.Error("got false, want true")
	}

	// Command changes are detected.
	doc["command"] = "c2"
	if verify(doc, OptVerifyFields("command")) {
		t.Error("got true, want false")
	}
	doc["command"] = "c"

	// A selection mismatch between sign and verify fails.
	if verify(doc, OptVerifyFields("command", "name")) {
		t.Error("got true, want false")
	}
}

func TestVerifyThreshold(t *testing.T) {
	strict := policy.Config{AllowLocalUnsigned: false, MinimumSignatures: 2}

	doc := enactDoc()
	sig1 := signEnact(t, doc, testPriv1)
	sig2 := signEnact(t, doc, testPriv2)

	trusted := OptVerifyWithTrusted(testPub1, testPub2)

	// One valid signature is below the threshold.
	doc["signatures"] = []any{sigValue(sig1)}
	if Verify(doc, Signature{}, OptVerifyEnactDefaults(), trusted, OptVerifyWithPolicy(strict)) {
		t.Error("got true, want false")
	}

	// A second valid signature satisfies it.
	doc["signatures"] = []any{sigValue(sig1), sigValue(sig2)}
	if !Verify(doc, Signature{}, OptVerifyEnactDefaults(), trusted, OptVerifyWithPolicy(strict)) {
		t.Error("got false, want true")
	}

	// All signatures must be valid, not just the threshold count.
	bad := sig2
	bad.Signature = sig1.Signature
	doc["signatures"] = []any{sigValue(sig1), sigValue(sig2), sigValue(bad)}
	if Verify(doc, Signature{}, OptVerifyEnactDefaults(), trusted, OptVerifyWithPolicy(strict)) {
		t.Error("got true, want false")
	}
}

func TestVerifyUnsigned(t *testing.T) {
	tests := []struct {
		name   string
		policy policy.Config
		want   bool
	}{
		{
			name:   "Permissive",
			policy: policy.Config{AllowLocalUnsigned: true, MinimumSignatures: 1},
			want:   true,
		},
		{
			name:   "Strict",
			policy: policy.Config{AllowLocalUnsigned: false, MinimumSignatures: 1},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			doc := enactDoc()
			doc["signatures"] = []any{}

			// The dummy signature argument is not considered when the
			// document carries a signatures sequence.
			dummy := Signature{Signature: "00", PublicKey: testPub1}

			got := Verify(doc, dummy,
				OptVerifyEnactDefaults(),
				OptVerifyWithTrusted(testPub1),
				OptVerifyWithPolicy(tt.policy),
			)
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVerifyFallback(t *testing.T) {
	kp1 := testKeyPair(t)
	kp2 := testKeyPair(t)
	kp3 := testKeyPair(t)

	doc := enactDoc()
	sig := signEnact(t, doc, kp2.PrivateKey)

	// Strip the public key hint.
	sig.PublicKey = ""

	var sawFallback bool
	cb := func(r VerifyResult) bool {
		if r.Error() == nil && r.Fallback() {
			sawFallback = true

			if got, want := r.PublicKey(), kp2.PublicKey; got != want {
				t.Errorf("got key %v, want %v", got, want)
			}
		}
		return false
	}

	opts := []VerifierOpt{
		OptVerifyEnactDefaults(),
		OptVerifyWithTrusted(kp1.PublicKey, kp2.PublicKey, kp3.PublicKey),
		OptVerifyCallback(cb),
	}
	if !Verify(doc, sig, opts...) {
		t.Error("got false, want true")
	}
	if !sawFallback {
		t.Error("fallback scan not observed")
	}

	// Remove the signer's key from the trusted set.
	opts = []VerifierOpt{
		OptVerifyEnactDefaults(),
		OptVerifyWithTrusted(kp1.PublicKey, kp3.PublicKey),
	}
	if Verify(doc, sig, opts...) {
		t.Error("got true, want false")
	}

	// An empty trusted set always fails the fallback.
	if Verify(doc, sig, OptVerifyEnactDefaults()) {
		t.Error("got true, want false")
	}
}

func TestVerifyUnknownKeyFallsBack(t *testing.T) {
	doc := enactDoc()
	sig := signEnact(t, doc, testPriv1)

	// The embedded key is not trusted, but a trusted key verifies via the
	// fallback scan.
	sig.PublicKey = testPub2

	var r VerifyResult
	cb := func(res VerifyResult) bool {
		r = res
		return false
	}

	opts := []VerifierOpt{
		OptVerifyEnactDefaults(),
		OptVerifyWithTrusted(testPub1),
		OptVerifyCallback(cb),
	}
	if !Verify(doc, sig, opts...) {
		t.Error("got false, want true")
	}
	if !r.Fallback() {
		t.Error("expected fallback verification")
	}
	if got, want := r.PublicKey(), testPub1; got != want {
		t.Errorf("got key %v, want %v", got, want)
	}
}

func TestVerifyTrustedKeyMismatch(t *testing.T) {
	doc := enactDoc()
	sig := signEnact(t, doc, testPriv1)

	// The embedded key is trusted but did not produce the signature; no
	// fallback applies.
	sig.PublicKey = testPub2

	var wantErr error
	cb := func(r VerifyResult) bool {
		wantErr = r.Error()
		return false
	}

	opts := []VerifierOpt{
		OptVerifyEnactDefaults(),
		OptVerifyWithTrusted(testPub1, testPub2),
		OptVerifyCallback(cb),
	}
	if Verify(doc, sig, opts...) {
		t.Error("got true, want false")
	}
	if !errors.Is(wantErr, &SignatureNotValidError{}) {
		t.Errorf("got error %v, want SignatureNotValidError", wantErr)
	}
}

func TestVerifyCallbackIgnoreError(t *testing.T) {
	doc := enactDoc()
	sig := signEnact(t, doc, testPriv1)

	doc["command"] = "echo pwned"

	cb := func(r VerifyResult) bool { return true }

	opts := []VerifierOpt{
		OptVerifyEnactDefaults(),
		OptVerifyWithTrusted(testPub1),
		OptVerifyCallback(cb),
	}
	if !Verify(doc, sig, opts...) {
		t.Error("got false, want true")
	}
}

func TestVerifyEmbeddedKey(t *testing.T) {
	doc := enactDoc()
	sig := signEnact(t, doc, testPriv1)

	// No trusted keys needed.
	if !Verify(doc, sig, OptVerifyEnactDefaults(), OptVerifyEmbeddedKey()) {
		t.Error("got false, want true")
	}

	// A stripped public key cannot verify.
	stripped := sig
	stripped.PublicKey = ""
	if Verify(doc, stripped, OptVerifyEnactDefaults(), OptVerifyEmbeddedKey()) {
		t.Error("got true, want false")
	}

	// Tampering is detected.
	doc["command"] = "echo pwned"
	if Verify(doc, sig, OptVerifyEnactDefaults(), OptVerifyEmbeddedKey()) {
		t.Error("got true, want false")
	}
}

func TestVerifyMissingRequiredField(t *testing.T) {
	doc := enactDoc()
	sig := signEnact(t, doc, testPriv1)

	delete(doc, "command")

	// Canonicalization failures surface as false, never as a panic or error.
	if Verify(doc, sig, OptVerifyEnactDefaults(), OptVerifyWithTrusted(testPub1)) {
		t.Error("got true, want false")
	}
}

// sigValue converts sig to the document wire shape.
func sigValue(sig Signature) map[string]any {
	return map[string]any{
		"signature": sig.Signature,
		"publicKey": sig.PublicKey,
		"algorithm": sig.Algorithm,
		"timestamp": sig.Timestamp,
	}
}
