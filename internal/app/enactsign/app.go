// Copyright (c) Contributors to the Enact project.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

// Package enactsign implements the operations behind the enactsign CLI.
package enactsign

import (
	"io"
	"log/slog"
	"os"

	"github.com/enactprotocol/security-go/pkg/keystore"
	"github.com/enactprotocol/security-go/pkg/policy"
	"github.com/enactprotocol/security-go/pkg/security"
)

// appOpts contains configured options.
type appOpts struct {
	out  io.Writer
	log  *slog.Logger
	root string
}

// AppOpt are used to configure optional behavior.
type AppOpt func(*appOpts) error

// App holds state and configured options.
type App struct {
	opts appOpts

	keys   *keystore.Store
	policy *policy.Store
	svc    *security.Service
}

// OptAppOutput specifies that output should be written to w.
func OptAppOutput(w io.Writer) AppOpt {
	return func(o *appOpts) error {
		o.out = w
		return nil
	}
}

// OptAppLogger specifies l as the structured logger for warnings.
func OptAppLogger(l *slog.Logger) AppOpt {
	return func(o *appOpts) error {
		o.log = l
		return nil
	}
}

// OptAppRoot specifies dir as the Enact home directory.
func OptAppRoot(dir string) AppOpt {
	return func(o *appOpts) error {
		o.root = dir
		return nil
	}
}

// New creates a new App configured with opts.
func New(opts ...AppOpt) (*App, error) {
	a := App{
		opts: appOpts{
			out: os.Stdout,
			log: slog.New(slog.NewJSONHandler(os.Stderr, nil)),
		},
	}

	for _, opt := range opts {
		if err := opt(&a.opts); err != nil {
			return nil, err
		}
	}

	var ksOpts []keystore.StoreOpt
	var psOpts []policy.StoreOpt
	if a.opts.root != "" {
		ksOpts = append(ksOpts, keystore.OptStoreRoot(a.opts.root))
		psOpts = append(psOpts, policy.OptStoreRoot(a.opts.root))
	}

	ks, err := keystore.NewStore(ksOpts...)
	if err != nil {
		return nil, err
	}
	ps, err := policy.NewStore(psOpts...)
	if err != nil {
		return nil, err
	}

	svc, err := security.New(
		security.OptServiceKeystore(ks),
		security.OptServicePolicy(ps),
	)
	if err != nil {
		return nil, err
	}

	a.keys = ks
	a.policy = ps
	a.svc = svc
	return &a, nil
}
