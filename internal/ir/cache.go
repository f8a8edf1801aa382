package ir

import "github.com/dekarrin/rezi"

// InstanceCache persists the generic-monomorphization cache across the
// files of one package compile (SPEC_FULL.md §12: resolved concretely as
// (symbol id, type-args) -> already seen), using the same rezi encoding as
// EncodeModule so both share one wire format library.
type InstanceCache map[string]bool

// EncodeInstanceCache serializes a cache built during analysis for reuse on
// a later compile of the same package.
func EncodeInstanceCache(cache InstanceCache) []byte {
	return rezi.EncBinary(cache)
}

// DecodeInstanceCache reverses EncodeInstanceCache.
func DecodeInstanceCache(data []byte) (InstanceCache, error) {
	cache := InstanceCache{}
	if _, err := rezi.DecBinary(data, &cache); err != nil {
		return nil, err
	}
	return cache, nil
}
