// Copyright (c) Contributors to the Enact project.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package enactsign

import (
	"github.com/spf13/cobra"
)

// getKeygen returns a command that generates and stores a key pair.
func (c *command) getKeygen() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:     "keygen [key_id]",
		Short:   "Generate key pair",
		Long:    "Generate a secp256k1 key pair and store it in the trusted-key directory.",
		Example: c.opts.rootPath + " keygen release-signing",
		Args:    cobra.MaximumNArgs(1),
		PreRunE: c.initApp,
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) > 0 {
				id = args[0]
			}
			return c.app.Keygen(id, description)
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "key description stored in metadata")

	return cmd
}

// getImport returns a command that imports key material.
func (c *command) getImport() *cobra.Command {
	var (
		description string
		private     bool
	)

	cmd := &cobra.Command{
		Use:     "import <key_id> <material>",
		Short:   "Import key",
		Long:    "Import a public key (hex, PEM, or PEM file path) into the trusted-key directory.",
		Example: c.opts.rootPath + " import upstream upstream-public.pem",
		Args:    cobra.ExactArgs(2),
		PreRunE: c.initApp,
		RunE: func(cmd *cobra.Command, args []string) error {
			if private {
				return c.app.ImportPrivateKey(args[0], args[1], description)
			}
			return c.app.ImportPublicKey(args[0], args[1], description)
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "key description stored in metadata")
	cmd.Flags().BoolVar(&private, "private", false, "material is a private key; store the derived pair")

	return cmd
}

// getExport returns a command that exports a key bundle.
func (c *command) getExport() *cobra.Command {
	var private bool

	cmd := &cobra.Command{
		Use:     "export <key_id> <path>",
		Short:   "Export key bundle",
		Long:    "Write a JSON bundle with the key's metadata and public key to path.",
		Example: c.opts.rootPath + " export release-signing release.json",
		Args:    cobra.ExactArgs(2),
		PreRunE: c.initApp,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.ExportKey(args[0], args[1], private)
		},
	}

	cmd.Flags().BoolVar(&private, "private", false, "include the private key in the bundle")

	return cmd
}

// getKeys returns a command that lists stored keys.
func (c *command) getKeys() *cobra.Command {
	return &cobra.Command{
		Use:     "keys",
		Short:   "List keys",
		Long:    "List trusted keys, noting which have private material stored locally.",
		Example: c.opts.rootPath + " keys",
		Args:    cobra.ExactArgs(0),
		PreRunE: c.initApp,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.ListKeys()
		},
		DisableFlagsInUseLine: true,
	}
}

// getRemove returns a command that removes a stored key.
func (c *command) getRemove() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <key_id>",
		Short:   "Remove key",
		Long:    "Remove the public, private, and metadata files stored for a key.",
		Example: c.opts.rootPath + " rm release-signing",
		Args:    cobra.ExactArgs(1),
		PreRunE: c.initApp,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.RemoveKey(args[0])
		},
		DisableFlagsInUseLine: true,
	}
}
