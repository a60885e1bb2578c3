// Copyright (c) Contributors to the Enact project.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package integrity

import (
	"fmt"
	"time"

	"github.com/enactprotocol/security-go/pkg/document"
	"github.com/enactprotocol/security-go/pkg/keys"
)

// Signature is a compact digital signature over the canonical projection of a
// document.
type Signature struct {
	// Signature is the hex encoding of the 64-byte compact (r || s) pair.
	Signature string `json:"signature"`

	// PublicKey is the hex encoding of the signer's 33-byte compressed
	// public key.
	PublicKey string `json:"publicKey"`

	// Algorithm is always "secp256k1".
	Algorithm string `json:"algorithm"`

	// Timestamp is the producer's wall-clock at sign time, in milliseconds
	// since the Unix epoch. It is informational only and not covered by the
	// signed bytes.
	Timestamp int64 `json:"timestamp"`
}

// signOpts accumulates configured signing options.
type signOpts struct {
	sel      []document.SelectOpt
	timeFunc func() time.Time
}

// SignerOpt are used to configure signing.
type SignerOpt func(*signOpts) error

// OptSignEnactDefaults selects the Enact tool manifest default field set.
func OptSignEnactDefaults() SignerOpt {
	return func(so *signOpts) error {
		so.sel = append(so.sel, document.OptUseEnactDefaults())
		return nil
	}
}

// OptSignFields specifies the exact fields to sign, overriding the default
// set entirely.
func OptSignFields(names ...string) SignerOpt {
	return func(so *signOpts) error {
		so.sel = append(so.sel, document.OptIncludeFields(names...))
		return nil
	}
}

// OptSignExcludeFields removes the named fields from the signed set.
func OptSignExcludeFields(names ...string) SignerOpt {
	return func(so *signOpts) error {
		so.sel = append(so.sel, document.OptExcludeFields(names...))
		return nil
	}
}

// OptSignAdditionalFields appends the named fields to the default signed set.
func OptSignAdditionalFields(names ...string) SignerOpt {
	return func(so *signOpts) error {
		so.sel = append(so.sel, document.OptAdditionalCriticalFields(names...))
		return nil
	}
}

// OptSignWithTime specifies fn as the func to obtain the signature timestamp.
func OptSignWithTime(fn func() time.Time) SignerOpt {
	return func(so *signOpts) error {
		so.timeFunc = fn
		return nil
	}
}

// Sign projects d according to opts, serializes the projection to canonical
// bytes, and signs the SHA-256 digest with the private scalar privHex. The
// returned Signature carries the public key derived from privHex.
//
// If a field required by the active default set is absent or empty, an error
// wrapping a document.RequiredFieldError is returned. If privHex is not a
// valid scalar, an error wrapping keys.ErrInvalidKey is returned.
func Sign(d document.Document, privHex string, opts ...SignerOpt) (Signature, error) {
	so := signOpts{timeFunc: time.Now}

	for _, opt := range opts {
		if err := opt(&so); err != nil {
			return Signature{}, fmt.Errorf("integrity: %w", err)
		}
	}

	digest, err := documentDigest(d, so.sel)
	if err != nil {
		return Signature{}, fmt.Errorf("integrity: %w", err)
	}

	sigHex, err := keys.SignDigest(privHex, digest)
	if err != nil {
		return Signature{}, fmt.Errorf("integrity: %w", err)
	}

	pubHex, err := keys.DerivePublic(privHex)
	if err != nil {
		return Signature{}, fmt.Errorf("integrity: %w", err)
	}

	return Signature{
		Signature: sigHex,
		PublicKey: pubHex,
		Algorithm: keys.Algorithm,
		Timestamp: so.timeFunc().UnixMilli(),
	}, nil
}
