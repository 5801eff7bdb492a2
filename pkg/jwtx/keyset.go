package jwtx

import (
	"errors"
	"sync"
)

var ErrNoKey = errors.New("jwtx: key not found")

type keyEntry struct {
	alg string
	key any
}

// KeySet maps key ids to verification keys. Safe for concurrent use so a
// signing key can be added while requests are being verified.
type KeySet struct {
	mu   sync.RWMutex
	keys map[string]keyEntry
}

// NewKeySet returns an empty KeySet.
func NewKeySet() *KeySet {
	return &KeySet{keys: make(map[string]keyEntry)}
}

// AddSigner registers the verification key of s under its kid.
func (k *KeySet) AddSigner(s Signer) error {
	if s.KID() == "" {
		return errors.New("jwtx: signer has no kid")
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	k.keys[s.KID()] = keyEntry{alg: s.Alg(), key: s.VerificationKey()}
	return nil
}

// Get returns the algorithm and key registered for kid.
func (k *KeySet) Get(kid string) (string, any, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	e, ok := k.keys[kid]
	if !ok {
		return "", nil, ErrNoKey
	}
	return e.alg, e.key, nil
}

// Algorithms lists the distinct algorithms in the set.
func (k *KeySet) Algorithms() []string {
	k.mu.RLock()
	defer k.mu.RUnlock()

	seen := make(map[string]struct{}, len(k.keys))
	out := make([]string, 0, len(k.keys))
	for _, e := range k.keys {
		if _, ok := seen[e.alg]; ok {
			continue
		}
		seen[e.alg] = struct{}{}
		out = append(out, e.alg)
	}
	return out
}

// IsReady returns true if the KeySet has at least one key loaded.
func (k *KeySet) IsReady() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.keys) > 0
}
