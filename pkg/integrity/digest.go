// Copyright (c) Contributors to the Enact project.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package integrity

import (
	"fmt"

	"github.com/enactprotocol/security-go/pkg/document"
	"github.com/enactprotocol/security-go/pkg/keys"
)

// documentDigest projects d according to sel and returns the hex SHA-256
// digest of the canonical bytes.
func documentDigest(d document.Document, sel []document.SelectOpt) (string, error) {
	c, err := document.Select(d, sel...)
	if err != nil {
		return "", err
	}

	b, err := c.Encode()
	if err != nil {
		return "", err
	}

	return keys.HashHex(b), nil
}

// DocumentHash returns the hex SHA-256 digest of the canonical projection of
// d according to opts. It is a pure function of (d, opts).
func DocumentHash(d document.Document, opts ...document.SelectOpt) (string, error) {
	digest, err := documentDigest(d, opts)
	if err != nil {
		return "", fmt.Errorf("integrity: %w", err)
	}
	return digest, nil
}
