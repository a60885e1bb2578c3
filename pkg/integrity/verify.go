// Copyright (c) Contributors to the Enact project.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package integrity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/enactprotocol/security-go/pkg/document"
	"github.com/enactprotocol/security-go/pkg/keys"
	"github.com/enactprotocol/security-go/pkg/policy"
)

var (
	errEmptyPublicKey   = errors.New("signature carries no public key")
	errSignatureInvalid = errors.New("cryptographic verification failed")
	errNoTrustedMatch   = errors.New("no trusted key verifies signature")
)

// SignatureNotValidError records an error when an invalid signature is
// encountered.
type SignatureNotValidError struct {
	PublicKey string // Hex public key carried by the signature, if any.
	Err       error  // Wrapped error.
}

func (e *SignatureNotValidError) Error() string {
	b := &strings.Builder{}

	if e.PublicKey == "" {
		fmt.Fprintf(b, "signature not valid")
	} else {
		fmt.Fprintf(b, "signature by key %s not valid", e.PublicKey)
	}

	if e.Err != nil {
		fmt.Fprintf(b, ": %v", e.Err)
	}

	return b.String()
}

func (e *SignatureNotValidError) Unwrap() error {
	return e.Err
}

// Is compares e against target. If target is a SignatureNotValidError and
// matches e or target has a zero value PublicKey, true is returned.
func (e *SignatureNotValidError) Is(target error) bool {
	t, ok := target.(*SignatureNotValidError)
	if !ok {
		return false
	}
	return e.PublicKey == t.PublicKey || t.PublicKey == ""
}

// verifyOpts accumulates configured verification options.
type verifyOpts struct {
	sel          []document.SelectOpt
	trusted      []string
	policy       *policy.Config
	cb           VerifyCallback
	embeddedOnly bool
}

// VerifierOpt are used to configure verification.
type VerifierOpt func(*verifyOpts) error

// OptVerifyEnactDefaults selects the Enact tool manifest default field set.
func OptVerifyEnactDefaults() VerifierOpt {
	return func(vo *verifyOpts) error {
		vo.sel = append(vo.sel, document.OptUseEnactDefaults())
		return nil
	}
}

// OptVerifyFields specifies the exact fields covered by the signatures,
// overriding the default set entirely. Verification succeeds only when this
// matches the selection used at sign time.
func OptVerifyFields(names ...string) VerifierOpt {
	return func(vo *verifyOpts) error {
		vo.sel = append(vo.sel, document.OptIncludeFields(names...))
		return nil
	}
}

// OptVerifyExcludeFields removes the named fields from the verified set.
func OptVerifyExcludeFields(names ...string) VerifierOpt {
	return func(vo *verifyOpts) error {
		vo.sel = append(vo.sel, document.OptExcludeFields(names...))
		return nil
	}
}

// OptVerifyAdditionalFields appends the named fields to the default verified
// set.
func OptVerifyAdditionalFields(names ...string) VerifierOpt {
	return func(vo *verifyOpts) error {
		vo.sel = append(vo.sel, document.OptAdditionalCriticalFields(names...))
		return nil
	}
}

// OptVerifyWithTrusted adds the hex public keys pubHex to the trusted key
// set used for verification. This may be called multiple times.
func OptVerifyWithTrusted(pubHex ...string) VerifierOpt {
	return func(vo *verifyOpts) error {
		vo.trusted = append(vo.trusted, pubHex...)
		return nil
	}
}

// OptVerifyWithPolicy overrides the verification policy.
func OptVerifyWithPolicy(p policy.Config) VerifierOpt {
	return func(vo *verifyOpts) error {
		vo.policy = &p
		return nil
	}
}

// OptVerifyCallback registers cb as the verification callback, which is
// called after each signature is verified.
func OptVerifyCallback(cb VerifyCallback) VerifierOpt {
	return func(vo *verifyOpts) error {
		vo.cb = cb
		return nil
	}
}

// OptVerifyEmbeddedKey verifies each signature only against the public key
// it embeds. No trust check, no fallback scan, and no policy applies. This
// supports environments without a persistent trusted-key store.
func OptVerifyEmbeddedKey() VerifierOpt {
	return func(vo *verifyOpts) error {
		vo.embeddedOnly = true
		return nil
	}
}

// Verify reports whether d carries valid signatures over its canonical
// projection according to opts.
//
// The signatures considered are those in the document's signatures sequence
// when d carries one, or sig alone otherwise. The effective policy is the
// one supplied via OptVerifyWithPolicy, or the library default. All
// signatures must verify, and their count must satisfy the policy threshold.
//
// Verify never returns an error: malformed signatures, malformed keys, and
// cryptographic failures all yield false.
func Verify(d document.Document, sig Signature, opts ...VerifierOpt) bool {
	vo := verifyOpts{}
	for _, opt := range opts {
		if err := opt(&vo); err != nil {
			return false
		}
	}

	sigs, present := documentSignatures(d)
	if !present {
		sigs = []Signature{sig}
	}

	if !vo.embeddedOnly {
		cfg := policy.Default()
		if vo.policy != nil {
			cfg = *vo.policy
		}

		if len(sigs) < cfg.MinimumSignatures {
			return cfg.AllowLocalUnsigned && len(sigs) == 0
		}
	} else if len(sigs) == 0 {
		return false
	}

	digest, err := documentDigest(d, vo.sel)
	if err != nil {
		return false
	}

	trusted := normalizeKeys(vo.trusted)

	for _, s := range sigs {
		r := vo.verifySignature(s, digest, trusted)

		ok := r.err == nil
		if vo.cb != nil {
			if ignoreError := vo.cb(r); ignoreError {
				ok = true
			}
		}

		if !ok {
			return false
		}
	}

	return true
}

// verifySignature verifies a single signature s against digest, consulting
// the trusted key set per the configured mode.
func (vo *verifyOpts) verifySignature(s Signature, digest string, trusted []string) VerifyResult {
	if vo.embeddedOnly {
		if s.PublicKey == "" {
			return VerifyResult{sig: s, err: &SignatureNotValidError{Err: errEmptyPublicKey}}
		}
		if !keys.VerifyDigest(s.PublicKey, digest, s.Signature) {
			return VerifyResult{sig: s, err: &SignatureNotValidError{PublicKey: s.PublicKey, Err: errSignatureInvalid}}
		}
		return VerifyResult{sig: s, keyHex: strings.ToLower(s.PublicKey)}
	}

	key := strings.ToLower(s.PublicKey)
	if key != "" && containsKey(trusted, key) {
		if keys.VerifyDigest(key, digest, s.Signature) {
			return VerifyResult{sig: s, keyHex: key}
		}
		return VerifyResult{sig: s, err: &SignatureNotValidError{PublicKey: key, Err: errSignatureInvalid}}
	}

	// The signature carries no usable public key hint. Scan the trusted set;
	// the first key that verifies wins.
	for _, pk := range trusted {
		if keys.VerifyDigest(pk, digest, s.Signature) {
			return VerifyResult{sig: s, keyHex: pk, fallback: true}
		}
	}

	return VerifyResult{sig: s, fallback: true, err: &SignatureNotValidError{PublicKey: key, Err: errNoTrustedMatch}}
}

// normalizeKeys lowercases and de-duplicates hex keys, preserving order.
func normalizeKeys(hexKeys []string) []string {
	seen := make(map[string]bool, len(hexKeys))
	out := make([]string, 0, len(hexKeys))
	for _, k := range hexKeys {
		k = strings.ToLower(k)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

// containsKey reports whether hexKeys contains key.
func containsKey(hexKeys []string, key string) bool {
	for _, k := range hexKeys {
		if k == key {
			return true
		}
	}
	return false
}
