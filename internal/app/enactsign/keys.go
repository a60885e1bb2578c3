// Copyright (c) Contributors to the Enact project.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package enactsign

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/enactprotocol/security-go/pkg/keys"
)

// Keygen generates a key pair and stores it under id. If id is empty, an
// identifier is minted.
func (a *App) Keygen(id, description string) error {
	id, kp, err := a.keys.Generate(id, description)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.opts.out, "%s %s\n", id, kp.PublicKey)
	return nil
}

// ImportPublicKey stores a trusted public key under id. The key material may
// be a hex compressed point, a PEM string, or a path to a PEM file.
func (a *App) ImportPublicKey(id, material, description string) error {
	pubHex, err := resolveKeyMaterial(material, keys.PEMToPublic)
	if err != nil {
		return err
	}
	return a.keys.ImportPublic(id, pubHex, description)
}

// ImportPrivateKey stores a key pair under id from private key material: a
// hex scalar, a PEM string, or a path to a PEM file.
func (a *App) ImportPrivateKey(id, material, description string) error {
	privHex, err := resolveKeyMaterial(material, keys.PEMToPrivate)
	if err != nil {
		return err
	}

	kp, err := a.keys.ImportPrivate(id, privHex, description)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.opts.out, "%s %s\n", id, kp.PublicKey)
	return nil
}

// resolveKeyMaterial normalizes material to hex, decoding PEM input with
// decode. Paths are read from disk first.
func resolveKeyMaterial(material string, decode func(string) (string, error)) (string, error) {
	if b, err := os.ReadFile(material); err == nil {
		material = string(b)
	}

	if keys.IsPEM(material) {
		return decode(material)
	}
	return strings.ToLower(strings.TrimSpace(material)), nil
}

// ExportKey writes a JSON bundle for the key stored under id to path.
func (a *App) ExportKey(id, path string, withPrivate bool) error {
	return a.keys.Export(id, path, withPrivate)
}

// ListKeys writes a table of stored keys. Trusted keys that fail to decode
// are logged as warnings; they still appear in the table.
func (a *App) ListKeys() error {
	_, skipped := a.keys.TrustedPublicKeys()
	for _, name := range skipped {
		a.opts.log.Warn("skipping undecodable trusted key", "file", name)
	}

	private := make(map[string]bool)
	for _, id := range a.keys.ListPrivate() {
		private[id] = true
	}

	tw := tabwriter.NewWriter(a.opts.out, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "ID\tCREATED\tPRIVATE\tDESCRIPTION")
	for _, id := range a.keys.ListTrusted() {
		md, _ := a.keys.GetMetadata(id)
		fmt.Fprintf(tw, "%s\t%s\t%v\t%s\n", id, md.Created, private[id], md.Description)
	}

	return nil
}

// RemoveKey deletes the key stored under id.
func (a *App) RemoveKey(id string) error {
	if !a.keys.Remove(id) {
		return fmt.Errorf("no key files found for %q", id)
	}
	return nil
}
