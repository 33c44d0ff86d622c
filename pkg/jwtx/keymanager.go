package jwtx

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/flowmerce/accounts/pkg/cryptox"
)

const (
	AlgorithmHS256 = "HS256"
	AlgorithmEdDSA = "EdDSA"
)

// maxEdDSAKeys bounds KeyManagerOptions.NumKeys.
const maxEdDSAKeys = 10

// KeyManager holds the signing keys of the process and the verifier that
// accepts their tokens. The key set is fixed at construction.
//
// HS256 signs with one shared secret and publishes nothing. EdDSA keys are
// generated at startup, kept in memory only and published through KeySet, so
// a restart invalidates every outstanding token.
type KeyManager struct {
	Verifier Verifier
	KeySet   *KeySet

	algorithm string
	signers   []Signer
}

type KeyManagerOptions struct {
	Algorithm string // AlgorithmHS256 or AlgorithmEdDSA
	Issuer    string // required; checked on every verify
	Audience  []string
	Secret    []byte // HS256 only
	NumKeys   int    // EdDSA only; 1 when unset, at most 10
}

func NewKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, errors.New("jwtx: issuer is required")
	}

	km := &KeyManager{algorithm: opts.Algorithm, KeySet: NewKeySet()}
	switch opts.Algorithm {
	case AlgorithmHS256:
		signer, err := NewSignerHS256("", opts.Secret)
		if err != nil {
			return nil, err
		}
		km.signers = []Signer{signer}
		km.Verifier = NewVerifierHS256(opts.Secret, opts.Issuer, opts.Audience)

	case AlgorithmEdDSA:
		n := min(max(opts.NumKeys, 1), maxEdDSAKeys)
		for i := range n {
			kid, err := cryptox.GenerateToken(cryptox.TokenSize128)
			if err != nil {
				return nil, fmt.Errorf("jwtx: key id: %w", err)
			}
			signer, err := GenerateSignerEdDSA(kid)
			if err != nil {
				return nil, fmt.Errorf("jwtx: generate EdDSA key %d: %w", i+1, err)
			}
			if err := km.KeySet.AddSigner(signer); err != nil {
				return nil, fmt.Errorf("jwtx: publish EdDSA key %d: %w", i+1, err)
			}
			km.signers = append(km.signers, signer)
		}
		km.Verifier = NewVerifierEdDSA(km.KeySet, opts.Issuer, opts.Audience)

	default:
		return nil, fmt.Errorf("jwtx: unsupported algorithm %q (want %s or %s)", opts.Algorithm, AlgorithmHS256, AlgorithmEdDSA)
	}
	return km, nil
}

func (km *KeyManager) Algorithm() string { return km.algorithm }

// IsReady reports whether a signer is available. Backs the readiness probe.
func (km *KeyManager) IsReady() bool { return len(km.signers) > 0 }

func (km *KeyManager) NumSigners() int { return len(km.signers) }

// GetSigner returns a signer, chosen at random when several keys exist.
func (km *KeyManager) GetSigner() Signer {
	switch len(km.signers) {
	case 0:
		return nil
	case 1:
		return km.signers[0]
	}
	return km.signers[rand.IntN(len(km.signers))]
}
