// Copyright (c) Contributors to the Enact project.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package enactsign

import (
	"encoding/json"
	"fmt"

	"github.com/enactprotocol/security-go/pkg/policy"
)

// ConfigShow writes the effective security policy.
func (a *App) ConfigShow() error {
	b, err := json.MarshalIndent(a.policy.Load(), "", "  ")
	if err != nil {
		return err
	}

	fmt.Fprintf(a.opts.out, "%s\n", b)
	return nil
}

// ConfigSet updates the persisted security policy with the non-nil fields
// of p.
func (a *App) ConfigSet(p policy.Partial) error {
	c, err := a.policy.Update(p)
	if err != nil {
		return err
	}

	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	fmt.Fprintf(a.opts.out, "%s\n", b)
	return nil
}

// ConfigReset overwrites the persisted security policy with the defaults.
func (a *App) ConfigReset() error {
	_, err := a.policy.Reset()
	return err
}
