package jwtx

import (
	"crypto/ed25519"
	"errors"
	"sync"
)

var ErrNoKey = errors.New("jwtx: key not found")

// KeySet is the in-memory set of Ed25519 verification keys, indexed by kid,
// and the JWKS document built from them. Safe for concurrent use.
type KeySet struct {
	mu    sync.RWMutex
	order []JWK
	byKID map[string]ed25519.PublicKey
}

func NewKeySet() *KeySet {
	return &KeySet{byKID: make(map[string]ed25519.PublicKey)}
}

// AddSigner publishes the public half of s.
func (k *KeySet) AddSigner(s PublicSigner) error {
	return k.AddJWK(s.PublicJWK())
}

// AddJWK decodes j and publishes it.
func (k *KeySet) AddJWK(j JWK) error {
	pub, err := j.PublicKey()
	if err != nil {
		return err
	}

	k.mu.Lock()
	defer k.mu.Unlock()
	k.byKID[j.Kid] = pub
	k.order = append(k.order, j)
	return nil
}

func (k *KeySet) Get(kid string) (ed25519.PublicKey, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	pub, ok := k.byKID[kid]
	if !ok {
		return nil, ErrNoKey
	}
	return pub, nil
}

// PublicJWKS copies the published keys. Keys is never nil so an empty set
// encodes as [].
func (k *KeySet) PublicJWKS() JWKS {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return JWKS{Keys: append([]JWK{}, k.order...)}
}

func (k *KeySet) Len() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.byKID)
}
