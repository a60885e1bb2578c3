// Copyright (c) Contributors to the Enact project.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package integrity

// VerifyResult records the outcome of verifying a single signature.
type VerifyResult struct {
	sig      Signature
	keyHex   string
	fallback bool
	err      error
}

// Signature returns the signature associated with the result.
func (r VerifyResult) Signature() Signature {
	return r.sig
}

// PublicKey returns the hex public key that verified the signature, or the
// empty string if no key did.
func (r VerifyResult) PublicKey() string {
	return r.keyHex
}

// Fallback returns true if the signature was verified by scanning the
// trusted key set rather than against its embedded public key.
func (r VerifyResult) Fallback() bool {
	return r.fallback
}

// Error returns an error describing the reason verification failed, or nil
// if verification was successful.
func (r VerifyResult) Error() error {
	return r.err
}

// VerifyCallback is called immediately after each signature is verified. If
// r contains a non-nil error, and the callback returns true, the error is
// ignored, and verification proceeds as if the signature were valid.
type VerifyCallback func(r VerifyResult) (ignoreError bool)
