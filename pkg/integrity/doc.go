// Copyright (c) Contributors to the Enact project.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

// Package integrity implements signing and verification of Enact documents.
//
// A document is projected to the subset of fields selected at sign time,
// serialized to canonical JSON, hashed with SHA-256, and signed with
// deterministic secp256k1 ECDSA. Verification applies a multi-signature
// policy and checks each signature against the trusted key set, falling back
// to a scan over all trusted keys when a signature carries no usable public
// key hint.
package integrity
