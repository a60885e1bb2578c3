// Copyright (c) Contributors to the Enact project.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

// Package security is the boundary API of the Enact signing library.
//
// Two profiles are provided. The Service type is the trusted-host profile:
// its Verify consults the persistent trusted-key store and the security
// policy configuration. The package-level VerifyWithKey is the untrusted
// profile: it verifies a signature only against the public key the signature
// embeds, for environments without a persistent store.
package security

import (
	"github.com/enactprotocol/security-go/pkg/document"
	"github.com/enactprotocol/security-go/pkg/integrity"
	"github.com/enactprotocol/security-go/pkg/keys"
)

// Document is an open mapping from field names to structured values.
type Document = document.Document

// Signature is a compact signature over the canonical projection of a
// document.
type Signature = integrity.Signature

// KeyPair holds a secp256k1 key pair as hex strings.
type KeyPair = keys.KeyPair

// GenerateKeyPair returns a new secp256k1 key pair.
func GenerateKeyPair() (KeyPair, error) {
	return keys.Generate()
}

// DerivePublic returns the hex compressed public key for the private scalar
// privHex.
func DerivePublic(privHex string) (string, error) {
	return keys.DerivePublic(privHex)
}

// Sign signs the canonical projection of d with privHex according to opts.
func Sign(d Document, privHex string, opts ...integrity.SignerOpt) (Signature, error) {
	return integrity.Sign(d, privHex, opts...)
}

// VerifyWithKey reports whether the signatures carried by d (or sig, when d
// carries none) verify against the public keys they embed. No trust store or
// policy is consulted.
func VerifyWithKey(d Document, sig Signature, opts ...integrity.VerifierOpt) bool {
	opts = append(opts, integrity.OptVerifyEmbeddedKey())
	return integrity.Verify(d, sig, opts...)
}

// DocumentHash returns the hex SHA-256 digest of the canonical projection of
// d according to opts.
func DocumentHash(d Document, opts ...document.SelectOpt) (string, error) {
	return integrity.DocumentHash(d, opts...)
}

// CanonicalDocument returns the ordered projection of d according to opts.
func CanonicalDocument(d Document, opts ...document.SelectOpt) (*document.Canonical, error) {
	return document.Select(d, opts...)
}

// SignedFields returns the sorted field names the configuration described by
// opts would sign.
func SignedFields(opts ...document.SelectOpt) ([]string, error) {
	return document.SelectedFields(opts...)
}

// AttachSignature returns a copy of d with sig appended to its signatures
// sequence. The original document is not modified.
func AttachSignature(d Document, sig Signature) Document {
	out := make(Document, len(d)+1)
	for k, v := range d {
		out[k] = v
	}

	var sigs []any
	if existing, ok := d[document.FieldSignatures].([]any); ok {
		sigs = append(sigs, existing...)
	}
	sigs = append(sigs, map[string]any{
		"signature": sig.Signature,
		"publicKey": sig.PublicKey,
		"algorithm": sig.Algorithm,
		"timestamp": sig.Timestamp,
	})

	out[document.FieldSignatures] = sigs
	return out
}
