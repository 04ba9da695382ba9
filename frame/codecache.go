// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package frame

import (
	"sync"

	"github.com/ethereum/go-ethereum/crypto"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Fantom-foundation/msgframe/tosca"
)

// HashRawCode returns the Keccak256 hash of raw, unvalidated contract
// bytes -- the key GetOrValidate is keyed by, computed before a Code
// value (which memoizes its own hash lazily) exists yet.
func HashRawCode(raw []byte) tosca.Hash {
	return tosca.Hash(crypto.Keccak256Hash(raw))
}

// DefaultCodeCacheCapacity bounds the number of distinct contracts'
// validated Code this process keeps around.
const DefaultCodeCacheCapacity = 8192

// CodeCache memoizes validated Code by its content hash, so repeated
// calls into the same deployed contract reuse the already-built
// section table instead of re-validating the raw bytes every time.
type CodeCache struct {
	cache *lru.Cache[tosca.Hash, *Code]
	lock  sync.Mutex
}

// NewCodeCache creates a cache with the given entry capacity.
func NewCodeCache(capacity int) *CodeCache {
	cache, err := lru.New[tosca.Hash, *Code](capacity)
	if err != nil {
		panic(err) // only returns an error for capacity <= 0
	}
	return &CodeCache{cache: cache}
}

// GetOrValidate returns the cached Code for hash, or -- on a miss --
// runs validate to build it, caches the result under hash and returns
// it. validate is only invoked when no entry is cached.
func (c *CodeCache) GetOrValidate(hash tosca.Hash, validate func() *Code) *Code {
	c.lock.Lock()
	defer c.lock.Unlock()

	if code, ok := c.cache.Get(hash); ok {
		return code
	}
	code := validate()
	c.cache.Add(hash, code)
	return code
}

// Len reports the number of entries currently cached.
func (c *CodeCache) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.cache.Len()
}
