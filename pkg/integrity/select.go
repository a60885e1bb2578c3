// Copyright (c) Contributors to the Enact project.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package integrity

import (
	"encoding/json"

	"github.com/enactprotocol/security-go/pkg/document"
)

// signatureFromValue converts a single signatures entry to a Signature.
// Entries that are not mappings yield a zero Signature, which cannot verify.
func signatureFromValue(v any) Signature {
	switch val := v.(type) {
	case Signature:
		return val
	case map[string]any:
		var sig Signature
		if s, ok := val["signature"].(string); ok {
			sig.Signature = s
		}
		if s, ok := val["publicKey"].(string); ok {
			sig.PublicKey = s
		}
		if s, ok := val["algorithm"].(string); ok {
			sig.Algorithm = s
		}
		sig.Timestamp = timestampFromValue(val["timestamp"])
		return sig
	default:
		return Signature{}
	}
}

// timestampFromValue converts the timestamp forms produced by JSON decoding.
func timestampFromValue(v any) int64 {
	switch val := v.(type) {
	case int64:
		return val
	case int:
		return int64(val)
	case float64:
		return int64(val)
	case json.Number:
		n, err := val.Int64()
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// documentSignatures extracts the signatures sequence from d. The second
// return value reports whether d carries a signatures sequence at all; an
// explicitly empty sequence is reported as present.
func documentSignatures(d document.Document) ([]Signature, bool) {
	v, ok := d[document.FieldSignatures]
	if !ok {
		return nil, false
	}

	switch val := v.(type) {
	case []Signature:
		sigs := make([]Signature, len(val))
		copy(sigs, val)
		return sigs, true
	case []any:
		sigs := make([]Signature, 0, len(val))
		for _, entry := range val {
			sigs = append(sigs, signatureFromValue(entry))
		}
		return sigs, true
	default:
		return nil, false
	}
}
