package compile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/asthra-lang/asthrac/internal/ir"
	"github.com/asthra-lang/asthrac/internal/types"
)

// instanceKeyToString and stringToInstanceKey convert between
// sema.Analyzer's typed instantiation-cache key and the string-keyed form
// ir.InstanceCache persists (SPEC_FULL.md §12): a generic-instantiation
// cache survives only across files of the same package compile, so it is
// this package's job, not internal/sema's or internal/ir's, to own the
// round trip between the two representations.
func instanceKeyToString(k types.InstanceKey) string {
	return strconv.Itoa(int(k.Symbol)) + "|" + k.Args
}

func stringToInstanceKey(s string) (types.InstanceKey, error) {
	sym, args, ok := strings.Cut(s, "|")
	if !ok {
		return types.InstanceKey{}, fmt.Errorf("compile: malformed instance cache key %q", s)
	}
	n, err := strconv.Atoi(sym)
	if err != nil {
		return types.InstanceKey{}, fmt.Errorf("compile: malformed instance cache key %q: %w", s, err)
	}
	return types.InstanceKey{Symbol: types.SymbolID(n), Args: args}, nil
}

// toInstanceCache flattens a completed analysis's generic-instantiation
// cache into the serializable form internal/ir persists.
func toInstanceCache(instances map[types.InstanceKey]bool) ir.InstanceCache {
	out := make(ir.InstanceCache, len(instances))
	for k, v := range instances {
		out[instanceKeyToString(k)] = v
	}
	return out
}

// fromInstanceCache is the inverse of toInstanceCache, used to seed a new
// Analyzer from a prior compile's persisted cache. Malformed entries are
// dropped rather than failing the whole compile — a corrupted cache file
// should cost a cache miss, not a build.
func fromInstanceCache(cache ir.InstanceCache) map[types.InstanceKey]bool {
	out := make(map[types.InstanceKey]bool, len(cache))
	for s, v := range cache {
		k, err := stringToInstanceKey(s)
		if err != nil {
			continue
		}
		out[k] = v
	}
	return out
}
