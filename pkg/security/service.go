// Copyright (c) Contributors to the Enact project.
// This software is licensed under a 3-clause BSD license. Please consult the LICENSE.md file
// distributed with the sources of this project regarding your rights to use or distribute this
// software.

package security

import (
	"fmt"

	"github.com/enactprotocol/security-go/pkg/integrity"
	"github.com/enactprotocol/security-go/pkg/keystore"
	"github.com/enactprotocol/security-go/pkg/policy"
)

// Service is the trusted-host profile. Its verification consults the
// persistent trusted-key store and the security policy configuration.
type Service struct {
	keys   *keystore.Store
	policy *policy.Store
}

// ServiceOpt are used to configure a Service.
type ServiceOpt func(*Service) error

// OptServiceRoot roots both the key store and the policy store at the Enact
// home directory dir.
func OptServiceRoot(dir string) ServiceOpt {
	return func(s *Service) error {
		ks, err := keystore.NewStore(keystore.OptStoreRoot(dir))
		if err != nil {
			return err
		}
		ps, err := policy.NewStore(policy.OptStoreRoot(dir))
		if err != nil {
			return err
		}
		s.keys = ks
		s.policy = ps
		return nil
	}
}

// OptServiceKeystore specifies ks as the trusted-key store.
func OptServiceKeystore(ks *keystore.Store) ServiceOpt {
	return func(s *Service) error {
		s.keys = ks
		return nil
	}
}

// OptServicePolicy specifies ps as the policy store.
func OptServicePolicy(ps *policy.Store) ServiceOpt {
	return func(s *Service) error {
		s.policy = ps
		return nil
	}
}

// New returns a Service configured with opts. Unless overridden, the stores
// are rooted at the default Enact home.
func New(opts ...ServiceOpt) (*Service, error) {
	s := &Service{}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("security: %w", err)
		}
	}

	if s.keys == nil {
		ks, err := keystore.NewStore()
		if err != nil {
			return nil, fmt.Errorf("security: %w", err)
		}
		s.keys = ks
	}

	if s.policy == nil {
		ps, err := policy.NewStore()
		if err != nil {
			return nil, fmt.Errorf("security: %w", err)
		}
		s.policy = ps
	}

	return s, nil
}

// Keystore returns the trusted-key store backing the service.
func (s *Service) Keystore() *keystore.Store {
	return s.keys
}

// PolicyStore returns the policy store backing the service.
func (s *Service) PolicyStore() *policy.Store {
	return s.policy
}

// Sign signs the canonical projection of d with privHex according to opts.
func (s *Service) Sign(d Document, privHex string, opts ...integrity.SignerOpt) (Signature, error) {
	return integrity.Sign(d, privHex, opts...)
}

// SignWithKey signs the canonical projection of d with the private key
// stored under keyID.
func (s *Service) SignWithKey(d Document, keyID string, opts ...integrity.SignerOpt) (Signature, error) {
	kp, ok := s.keys.Get(keyID)
	if !ok {
		return Signature{}, fmt.Errorf("security: %w: %v", keystore.ErrKeyNotFound, keyID)
	}
	return integrity.Sign(d, kp.PrivateKey, opts...)
}

// Verify reports whether d carries valid signatures over its canonical
// projection according to opts. The effective policy is the persisted
// configuration, unless overridden via integrity.OptVerifyWithPolicy; the
// trusted key set is a snapshot of the trusted-key store taken at the start
// of the call.
func (s *Service) Verify(d Document, sig Signature, opts ...integrity.VerifierOpt) bool {
	cfg := s.policy.Load()
	trusted, _ := s.keys.TrustedPublicKeys()

	all := make([]integrity.VerifierOpt, 0, len(opts)+2)
	all = append(all,
		integrity.OptVerifyWithPolicy(cfg),
		integrity.OptVerifyWithTrusted(trusted...),
	)
	all = append(all, opts...)

	return integrity.Verify(d, sig, all...)
}
