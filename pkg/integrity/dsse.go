// Copyright (c) Contributors to the Enact project.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package integrity

import (
	"bytes"
	"context"
	"crypto"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	ssldsse "github.com/secure-systems-lab/go-securesystemslib/dsse"
	"github.com/sigstore/sigstore/pkg/signature"
	"github.com/sigstore/sigstore/pkg/signature/dsse"
	"github.com/sigstore/sigstore/pkg/signature/options"

	"github.com/enactprotocol/security-go/pkg/document"
	"github.com/enactprotocol/security-go/pkg/keys"
)

// documentMediaType is the DSSE payload type for canonical Enact documents.
const documentMediaType = "application/vnd.enact.document+json"

var (
	errDSSEVerifyEnvelopeFailed  = errors.New("dsse: verify envelope failed")
	errDSSEUnexpectedPayloadType = errors.New("unexpected DSSE payload type")
)

// SignDSSE projects d according to opts and signs the canonical bytes in a
// DSSE envelope with the private scalar privHex. The envelope signature is
// ASN.1 DER ECDSA, for interoperability with DSSE tooling; the compact
// signature scheme used elsewhere in this library does not apply inside
// envelopes.
func SignDSSE(ctx context.Context, d document.Document, privHex string, opts ...SignerOpt) ([]byte, error) {
	so := signOpts{}
	for _, opt := range opts {
		if err := opt(&so); err != nil {
			return nil, fmt.Errorf("integrity: %w", err)
		}
	}

	c, err := document.Select(d, so.sel...)
	if err != nil {
		return nil, fmt.Errorf("integrity: %w", err)
	}

	b, err := c.Encode()
	if err != nil {
		return nil, fmt.Errorf("integrity: %w", err)
	}

	priv, err := keys.ECDSAPrivateKey(privHex)
	if err != nil {
		return nil, fmt.Errorf("integrity: %w", err)
	}

	sv, err := signature.LoadECDSASignerVerifier(priv, crypto.SHA256)
	if err != nil {
		return nil, fmt.Errorf("integrity: %w", err)
	}

	s := dsse.WrapSigner(sv, documentMediaType)

	env, err := s.SignMessage(bytes.NewReader(b), options.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("integrity: %w", err)
	}
	return env, nil
}

// VerifyDSSE verifies the DSSE envelope env against the hex public keys
// pubHex, and returns the decoded payload. At least one key must verify.
func VerifyDSSE(ctx context.Context, env []byte, pubHex ...string) ([]byte, error) {
	vs := make([]signature.Verifier, 0, len(pubHex))
	for _, h := range pubHex {
		pub, err := keys.ECDSAPublicKey(h)
		if err != nil {
			return nil, fmt.Errorf("integrity: %w", err)
		}

		v, err := signature.LoadECDSAVerifier(pub, crypto.SHA256)
		if err != nil {
			return nil, fmt.Errorf("integrity: %w", err)
		}
		vs = append(vs, v)
	}

	v := dsse.WrapMultiVerifier(documentMediaType, 1, vs...)

	if err := v.VerifySignature(bytes.NewReader(env), nil, options.WithContext(ctx)); err != nil {
		return nil, fmt.Errorf("integrity: %w: %v", errDSSEVerifyEnvelopeFailed, err)
	}

	var e ssldsse.Envelope
	if err := json.Unmarshal(env, &e); err != nil {
		return nil, fmt.Errorf("integrity: %w", err)
	}

	if e.PayloadType != documentMediaType {
		return nil, fmt.Errorf("integrity: %w: %v", errDSSEUnexpectedPayloadType, e.PayloadType)
	}

	return decodeEnvelopePayload(e)
}

// decodeEnvelopePayload returns the decoded payload from envelope e. Both
// standard and URL-safe base64 encodings are accepted.
func decodeEnvelopePayload(e ssldsse.Envelope) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(e.Payload)
	if err != nil {
		return base64.URLEncoding.DecodeString(e.Payload)
	}
	return b, nil
}

// IsDSSE returns true if r contains a signature in a DSSE envelope with the
// canonical document payload type.
func IsDSSE(r io.Reader) bool {
	var e ssldsse.Envelope
	if err := json.NewDecoder(r).Decode(&e); err != nil {
		return false
	}

	return documentMediaType == e.PayloadType
}
