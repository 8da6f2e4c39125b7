package cache

import (
	"sync"
	"time"

	"webshoptech/szamlabridge/internal/core/taxregistry"
)

// TaxpayerCache provides thread-safe caching of tax-registry lookups keyed
// by VAT number with TTL support. Repeat orders from the same buyer within
// the TTL skip the registry round trip.
type TaxpayerCache struct {
	mu      sync.RWMutex
	entries map[string]taxpayerEntry
}

type taxpayerEntry struct {
	record    taxregistry.TaxpayerRecord
	expiresAt time.Time
}

// NewTaxpayerCache creates an empty taxpayer cache.
func NewTaxpayerCache() *TaxpayerCache {
	return &TaxpayerCache{entries: make(map[string]taxpayerEntry)}
}

// Get returns the cached record for the VAT number if it is still valid.
func (c *TaxpayerCache) Get(vatNumber string) (*taxregistry.TaxpayerRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[vatNumber]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}

	rec := entry.record
	return &rec, true
}

// Set stores a record for the VAT number with the specified TTL.
func (c *TaxpayerCache) Set(vatNumber string, rec taxregistry.TaxpayerRecord, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[vatNumber] = taxpayerEntry{
		record:    rec,
		expiresAt: time.Now().Add(ttl),
	}
}

// Clear removes all cached records.
func (c *TaxpayerCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]taxpayerEntry)
}
