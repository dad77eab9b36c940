package astutil

import (
	"encoding/binary"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/0xkitsune/solstat/internal/solidity"
	"github.com/0xkitsune/solstat/pkg/ast"
)

// StorageVariable is one contract-level state variable: its declaration
// location and the attributes detectors key off of.
type StorageVariable struct {
	Loc        solidity.Loc
	Constant   bool
	Immutable  bool
	Visibility solidity.Visibility
	// HasVisibility distinguishes "no explicit visibility keyword" (the
	// Solidity-default-internal case) from an explicit `internal`.
	HasVisibility bool
}

var storageVarCache sync.Map // uint64 -> storageVarEntry

// storageVarEntry is one memoized table together with the unit it was
// built from; a lookup reuses it only for that same unit.
type storageVarEntry struct {
	unit *solidity.SourceUnit
	vars map[string]StorageVariable
}

// cacheKey mixes the source unit's identity with the two filter flags so a
// (unit, ignoreConstants, ignoreImmutables) triple memoizes independently.
func cacheKey(su *solidity.SourceUnit, ignoreConstants, ignoreImmutables bool) uint64 {
	var buf [10]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(su.FileID))
	if ignoreConstants {
		buf[8] = 1
	}
	if ignoreImmutables {
		buf[9] = 1
	}
	h := xxhash.New()
	h.Write(buf[:])
	// Fold in the unit's part count as well. Two units can still share a
	// key (same FileID and part count), so StorageVariables checks that a
	// cached entry was built from the unit being asked about.
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], uint64(len(su.Parts)))
	h.Write(n[:])
	return h.Sum64()
}

// StorageVariables builds the storage-variable table for a source unit:
// every contract's non-mapping state variables, keyed by name, filtered by
// the two boolean attribute filters spec.md §3/§4.3 describes. Results are
// memoized per (source unit, filters) using xxhash as the cache key.
func StorageVariables(su *solidity.SourceUnit, ignoreConstants, ignoreImmutables bool) map[string]StorageVariable {
	key := cacheKey(su, ignoreConstants, ignoreImmutables)
	if cached, ok := storageVarCache.Load(key); ok {
		if e := cached.(storageVarEntry); e.unit == su {
			return e.vars
		}
	}

	out := make(map[string]StorageVariable)
	for _, contract := range ast.WalkOne(ast.KindContractDefinition, su) {
		cd := contract.(*solidity.ContractDefinition)
		for _, part := range cd.Parts {
			vd, ok := part.(*solidity.VariableDefinition)
			if !ok {
				continue
			}
			if vd.Type != nil && vd.Type.Kind == solidity.TypeKindMapping {
				continue
			}
			if vd.Constant && ignoreConstants {
				continue
			}
			if vd.Immutable && ignoreImmutables {
				continue
			}
			out[vd.Name] = StorageVariable{
				Loc:           vd.NodeLoc,
				Constant:      vd.Constant,
				Immutable:     vd.Immutable,
				Visibility:    vd.Visibility,
				HasVisibility: vd.Visibility != solidity.VisibilityNone,
			}
		}
	}

	storageVarCache.Store(key, storageVarEntry{unit: su, vars: out})
	return out
}
