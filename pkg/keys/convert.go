// Copyright (c) Contributors to the Enact project.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package keys

import (
	cryptoecdsa "crypto/ecdsa"
)

// ECDSAPrivateKey returns the private scalar privHex as a crypto/ecdsa key
// on the secp256k1 curve, for use with interfaces that consume standard
// library key types.
func ECDSAPrivateKey(privHex string) (*cryptoecdsa.PrivateKey, error) {
	priv, err := parsePrivate(privHex)
	if err != nil {
		return nil, err
	}
	return priv.ToECDSA(), nil
}

// ECDSAPublicKey returns the public point pubHex as a crypto/ecdsa key on
// the secp256k1 curve.
func ECDSAPublicKey(pubHex string) (*cryptoecdsa.PublicKey, error) {
	pub, err := parsePublic(pubHex)
	if err != nil {
		return nil, err
	}
	return pub.ToECDSA(), nil
}
