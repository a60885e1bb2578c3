// Copyright (c) Contributors to the Enact project.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

// Package enactsign adds enactsign commands to a parent cobra.Command.
package enactsign

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/enactprotocol/security-go/internal/app/enactsign"
)

// commandOpts contains configured options.
type commandOpts struct {
	rootPath string
	home     string
}

// CommandOpt are used to configure optional command behavior.
type CommandOpt func(*commandOpts) error

// OptRootPath specifies path as the command path prefix displayed in
// examples.
func OptRootPath(path string) CommandOpt {
	return func(co *commandOpts) error {
		co.rootPath = path
		return nil
	}
}

// command gathers the state shared by enactsign commands.
type command struct {
	opts commandOpts
	app  *enactsign.App
}

// initApp initializes the underlying App. Used as a PreRunE.
func (c *command) initApp(cmd *cobra.Command, args []string) error {
	app, err := enactsign.New(
		enactsign.OptAppOutput(cmd.OutOrStdout()),
		enactsign.OptAppRoot(c.opts.home),
	)
	if err != nil {
		return err
	}

	c.app = app
	return nil
}

// addSelectionFlags registers the field-selection flags on fs.
func addSelectionFlags(fs *pflag.FlagSet, sel *enactsign.Selection) {
	fs.BoolVar(&sel.EnactDefaults, "enact", false, "use the Enact tool manifest default field set")
	fs.StringSliceVar(&sel.Fields, "fields", nil, "sign exactly these fields, overriding the default set")
	fs.StringSliceVar(&sel.ExcludeFields, "exclude", nil, "remove these fields from the selected set")
	fs.StringSliceVar(&sel.AdditionalFields, "add-fields", nil, "append these fields to the default set")
}

// AddCommands adds enactsign commands to cmd according to opts.
//
// Commands are provided to generate and manage keys, to sign and verify
// Enact documents, to inspect canonical projections, and to manage the
// security policy.
func AddCommands(cmd *cobra.Command, opts ...CommandOpt) error {
	c := &command{
		opts: commandOpts{
			rootPath: cmd.CommandPath(),
		},
	}

	for _, opt := range opts {
		if err := opt(&c.opts); err != nil {
			return err
		}
	}

	cmd.PersistentFlags().StringVar(&c.opts.home, "home", "",
		"Enact home directory (default $ENACT_HOME, then $HOME/.enact)")

	cmd.AddCommand(
		c.getKeygen(),
		c.getImport(),
		c.getExport(),
		c.getKeys(),
		c.getRemove(),
		c.getSign(),
		c.getVerify(),
		c.getHash(),
		c.getCanonical(),
		c.getFields(),
		c.getLint(),
		c.getConfig(),
	)

	return nil
}
