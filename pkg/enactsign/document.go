// Copyright (c) Contributors to the Enact project.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package enactsign

import (
	"github.com/spf13/cobra"

	"github.com/enactprotocol/security-go/internal/app/enactsign"
)

// getSign returns a command that signs a document.
func (c *command) getSign() *cobra.Command {
	var (
		sel enactsign.Selection
		out string
	)

	cmd := &cobra.Command{
		Use:     "sign <document> <key_id>",
		Short:   "Sign document",
		Long:    "Sign the selected fields of a JSON document and attach the signature.",
		Example: c.opts.rootPath + " sign tool.json release-signing --enact",
		Args:    cobra.ExactArgs(2),
		PreRunE: c.initApp,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Sign(args[0], args[1], sel, out)
		},
	}

	addSelectionFlags(cmd.Flags(), &sel)
	cmd.Flags().StringVarP(&out, "output", "o", "", "write the signed document to this path")

	return cmd
}

// getVerify returns a command that verifies a document.
func (c *command) getVerify() *cobra.Command {
	var (
		sel      enactsign.Selection
		embedded bool
	)

	cmd := &cobra.Command{
		Use:     "verify <document>",
		Short:   "Verify document",
		Long:    "Verify the signatures attached to a JSON document against the trusted-key store and the configured policy.",
		Example: c.opts.rootPath + " verify tool.json --enact",
		Args:    cobra.ExactArgs(1),
		PreRunE: c.initApp,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Verify(args[0], sel, embedded)
		},
	}

	addSelectionFlags(cmd.Flags(), &sel)
	cmd.Flags().BoolVar(&embedded, "embedded-key", false,
		"verify only against the public keys embedded in the signatures")

	return cmd
}

// getHash returns a command that prints the canonical document digest.
func (c *command) getHash() *cobra.Command {
	var sel enactsign.Selection

	cmd := &cobra.Command{
		Use:     "hash <document>",
		Short:   "Hash document",
		Long:    "Print the hex SHA-256 digest of the canonical projection of a JSON document.",
		Example: c.opts.rootPath + " hash tool.json --enact",
		Args:    cobra.ExactArgs(1),
		PreRunE: c.initApp,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Hash(args[0], sel)
		},
	}

	addSelectionFlags(cmd.Flags(), &sel)

	return cmd
}

// getCanonical returns a command that prints the canonical projection.
func (c *command) getCanonical() *cobra.Command {
	var sel enactsign.Selection

	cmd := &cobra.Command{
		Use:     "canonical <document>",
		Short:   "Print canonical document",
		Long:    "Print the canonical JSON projection of a document, as covered by signatures.",
		Example: c.opts.rootPath + " canonical tool.json --enact",
		Args:    cobra.ExactArgs(1),
		PreRunE: c.initApp,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Canonical(args[0], sel)
		},
	}

	addSelectionFlags(cmd.Flags(), &sel)

	return cmd
}

// getFields returns a command that prints the selected field names.
func (c *command) getFields() *cobra.Command {
	var sel enactsign.Selection

	cmd := &cobra.Command{
		Use:     "fields",
		Short:   "Print signed fields",
		Long:    "Print the field names the given selection would sign.",
		Example: c.opts.rootPath + " fields --enact",
		Args:    cobra.ExactArgs(0),
		PreRunE: c.initApp,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Fields(sel)
		},
	}

	addSelectionFlags(cmd.Flags(), &sel)

	return cmd
}

// getLint returns a command that validates a tool manifest.
func (c *command) getLint() *cobra.Command {
	return &cobra.Command{
		Use:     "lint <document>",
		Short:   "Lint tool manifest",
		Long:    "Check that a document carries the required Enact tool manifest fields, with semantic versions where applicable.",
		Example: c.opts.rootPath + " lint tool.json",
		Args:    cobra.ExactArgs(1),
		PreRunE: c.initApp,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Lint(args[0])
		},
		DisableFlagsInUseLine: true,
	}
}
