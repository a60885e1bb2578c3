// Copyright (c) Contributors to the Enact project.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package enactsign

import (
	"github.com/spf13/cobra"

	"github.com/enactprotocol/security-go/pkg/policy"
)

// getConfig returns the security policy command group.
func (c *command) getConfig() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage security policy",
		Long:  "Show, update, or reset the persisted verification policy.",
	}

	cmd.AddCommand(
		c.getConfigShow(),
		c.getConfigSet(),
		c.getConfigReset(),
	)

	return cmd
}

// getConfigShow returns a command that prints the effective policy.
func (c *command) getConfigShow() *cobra.Command {
	return &cobra.Command{
		Use:     "show",
		Short:   "Show policy",
		Args:    cobra.ExactArgs(0),
		PreRunE: c.initApp,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.ConfigShow()
		},
		DisableFlagsInUseLine: true,
	}
}

// getConfigSet returns a command that updates the persisted policy.
func (c *command) getConfigSet() *cobra.Command {
	var (
		allowUnsigned bool
		minSigs       int
	)

	cmd := &cobra.Command{
		Use:     "set",
		Short:   "Update policy",
		Example: c.opts.rootPath + " config set --minimum-signatures 2",
		Args:    cobra.ExactArgs(0),
		PreRunE: c.initApp,
		RunE: func(cmd *cobra.Command, args []string) error {
			var p policy.Partial
			if cmd.Flags().Changed("allow-unsigned") {
				p.AllowLocalUnsigned = &allowUnsigned
			}
			if cmd.Flags().Changed("minimum-signatures") {
				p.MinimumSignatures = &minSigs
			}
			return c.app.ConfigSet(p)
		},
	}

	cmd.Flags().BoolVar(&allowUnsigned, "allow-unsigned", true, "accept documents that carry no signatures")
	cmd.Flags().IntVar(&minSigs, "minimum-signatures", 1, "number of valid signatures a document must carry")

	return cmd
}

// getConfigReset returns a command that resets the policy to defaults.
func (c *command) getConfigReset() *cobra.Command {
	return &cobra.Command{
		Use:     "reset",
		Short:   "Reset policy",
		Args:    cobra.ExactArgs(0),
		PreRunE: c.initApp,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.ConfigReset()
		},
		DisableFlagsInUseLine: true,
	}
}
