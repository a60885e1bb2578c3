// Copyright (c) Contributors to the Enact project.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package enactsign

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/enactprotocol/security-go/pkg/document"
	"github.com/enactprotocol/security-go/pkg/integrity"
	"github.com/enactprotocol/security-go/pkg/security"
)

var errVerificationFailed = errors.New("verification failed")

// Selection carries the field-selection flags shared by document commands.
type Selection struct {
	EnactDefaults    bool
	Fields           []string
	ExcludeFields    []string
	AdditionalFields []string
}

// selectOpts converts s to document selection options.
func (s Selection) selectOpts() []document.SelectOpt {
	var opts []document.SelectOpt
	if s.EnactDefaults {
		opts = append(opts, document.OptUseEnactDefaults())
	}
	if len(s.Fields) > 0 {
		opts = append(opts, document.OptIncludeFields(s.Fields...))
	}
	if len(s.ExcludeFields) > 0 {
		opts = append(opts, document.OptExcludeFields(s.ExcludeFields...))
	}
	if len(s.AdditionalFields) > 0 {
		opts = append(opts, document.OptAdditionalCriticalFields(s.AdditionalFields...))
	}
	return opts
}

// signerOpts converts s to signing options.
func (s Selection) signerOpts() []integrity.SignerOpt {
	var opts []integrity.SignerOpt
	if s.EnactDefaults {
		opts = append(opts, integrity.OptSignEnactDefaults())
	}
	if len(s.Fields) > 0 {
		opts = append(opts, integrity.OptSignFields(s.Fields...))
	}
	if len(s.ExcludeFields) > 0 {
		opts = append(opts, integrity.OptSignExcludeFields(s.ExcludeFields...))
	}
	if len(s.AdditionalFields) > 0 {
		opts = append(opts, integrity.OptSignAdditionalFields(s.AdditionalFields...))
	}
	return opts
}

// verifierOpts converts s to verification options.
func (s Selection) verifierOpts() []integrity.VerifierOpt {
	var opts []integrity.VerifierOpt
	if s.EnactDefaults {
		opts = append(opts, integrity.OptVerifyEnactDefaults())
	}
	if len(s.Fields) > 0 {
		opts = append(opts, integrity.OptVerifyFields(s.Fields...))
	}
	if len(s.ExcludeFields) > 0 {
		opts = append(opts, integrity.OptVerifyExcludeFields(s.ExcludeFields...))
	}
	if len(s.AdditionalFields) > 0 {
		opts = append(opts, integrity.OptVerifyAdditionalFields(s.AdditionalFields...))
	}
	return opts
}

// loadDocument reads a JSON document from path.
func loadDocument(path string) (document.Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return document.FromJSON(b)
}

// Sign signs the document at path with the private key stored under keyID,
// and writes the document with the signature attached. When out is empty the
// input file is overwritten.
func (a *App) Sign(path, keyID string, sel Selection, out string) error {
	d, err := loadDocument(path)
	if err != nil {
		return err
	}

	sig, err := a.svc.SignWithKey(d, keyID, sel.signerOpts()...)
	if err != nil {
		return err
	}

	signed := security.AttachSignature(d, sig)

	b, err := json.MarshalIndent(signed, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')

	if out == "" {
		out = path
	}
	return os.WriteFile(out, b, 0o644)
}

// Verify verifies the signatures carried by the document at path against the
// trusted-key store and the configured policy. When embeddedOnly is set,
// signatures are checked only against the keys they embed.
func (a *App) Verify(path string, sel Selection, embeddedOnly bool) error {
	d, err := loadDocument(path)
	if err != nil {
		return err
	}

	opts := sel.verifierOpts()
	opts = append(opts, integrity.OptVerifyCallback(a.logResult))

	var ok bool
	if embeddedOnly {
		ok = security.VerifyWithKey(d, integrity.Signature{}, opts...)
	} else {
		ok = a.svc.Verify(d, integrity.Signature{}, opts...)
	}

	if !ok {
		return errVerificationFailed
	}

	fmt.Fprintln(a.opts.out, "verified")
	return nil
}

// logResult reports per-signature verification outcomes without altering
// them.
func (a *App) logResult(r integrity.VerifyResult) bool {
	if err := r.Error(); err != nil {
		a.opts.log.Warn("signature not valid", "error", err)
	} else if r.Fallback() {
		a.opts.log.Info("signature verified by trusted-key scan", "publicKey", r.PublicKey())
	}
	return false
}

// Hash writes the hex SHA-256 digest of the canonical projection of the
// document at path.
func (a *App) Hash(path string, sel Selection) error {
	d, err := loadDocument(path)
	if err != nil {
		return err
	}

	digest, err := integrity.DocumentHash(d, sel.selectOpts()...)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.opts.out, digest)
	return nil
}

// Canonical writes the canonical JSON projection of the document at path.
func (a *App) Canonical(path string, sel Selection) error {
	d, err := loadDocument(path)
	if err != nil {
		return err
	}

	c, err := document.Select(d, sel.selectOpts()...)
	if err != nil {
		return err
	}

	b, err := c.Encode()
	if err != nil {
		return err
	}

	fmt.Fprintf(a.opts.out, "%s\n", b)
	return nil
}

// Fields writes the field names the given selection would sign.
func (a *App) Fields(sel Selection) error {
	names, err := document.SelectedFields(sel.selectOpts()...)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.opts.out, strings.Join(names, "\n"))
	return nil
}

// Lint validates the document at path as an Enact tool manifest.
func (a *App) Lint(path string) error {
	d, err := loadDocument(path)
	if err != nil {
		return err
	}

	if err := document.ValidateManifest(d); err != nil {
		return err
	}

	fmt.Fprintln(a.opts.out, "ok")
	return nil
}
