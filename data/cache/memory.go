package cache

import (
	"context"
	"sync"
	"time"

	"github.com/KotFed0t/meme_launchpad_bot/config"
	"github.com/KotFed0t/meme_launchpad_bot/internal/model"
	"github.com/ethereum/go-ethereum/common"
)

type memoryEntry struct {
	addrs     model.ContractAddresses
	expiresAt time.Time
}

// MemoryCache is used when redis is disabled.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[common.Address]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryCache(cfg *config.Config) *MemoryCache {
	return &MemoryCache{
		entries: make(map[common.Address]memoryEntry),
		ttl:     cfg.Cache.ContractExpiration,
		now:     time.Now,
	}
}

func (m *MemoryCache) SetContractAddresses(ctx context.Context, contract common.Address, addrs model.ContractAddresses) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[contract] = memoryEntry{addrs: addrs, expiresAt: m.now().Add(m.ttl)}
	return nil
}

func (m *MemoryCache) GetContractAddresses(ctx context.Context, contract common.Address) (model.ContractAddresses, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[contract]
	if !ok || !m.now().Before(entry.expiresAt) {
		return model.ContractAddresses{}, ErrNotFound
	}
	return entry.addrs, nil
}
