// Package astutil provides the reusable helpers detectors lean on: a type
// width table, an EVM storage-slot packing simulator, a storage-variable
// enumerator, a pragma-version extractor, and a byte-offset line mapper.
package astutil

import (
	"strconv"
	"strings"

	"github.com/0xkitsune/solstat/internal/solidity"
)

// TypeBits returns the storage width in bits of a Solidity value type, for
// use in packing calculations. Reference/mapping types and anything this
// package does not recognize are treated as worst-case: they occupy a slot
// alone (256 bits).
//
// bool is sized at 1 bit here even though Solidity still consumes a whole
// byte for it in memory/calldata — the packer only needs "does another
// value fit in the remaining bits of this slot", and a single bool never
// prevents another small value from sharing its slot.
func TypeBits(t *solidity.TypeName) uint16 {
	if t == nil || t.Kind != solidity.TypeKindElementary {
		return 256
	}
	name := t.Name
	switch name {
	case "address", "address payable":
		return 256
	case "bool":
		return 1
	case "string", "bytes":
		return 256
	}
	switch {
	case strings.HasPrefix(name, "uint"):
		return numericWidth(name, "uint")
	case strings.HasPrefix(name, "int"):
		return numericWidth(name, "int")
	case strings.HasPrefix(name, "bytes"):
		if n, ok := parseSuffix(name, "bytes"); ok {
			return uint16(n * 8)
		}
		return 256
	}
	return 256
}

// numericWidth parses the bit width suffix on an int/uint type name,
// defaulting to 256 for the bare `int`/`uint` keyword.
func numericWidth(name, prefix string) uint16 {
	n, ok := parseSuffix(name, prefix)
	if !ok {
		return 256
	}
	return uint16(n)
}

func parseSuffix(name, prefix string) (int, bool) {
	suffix := strings.TrimPrefix(name, prefix)
	if suffix == "" {
		return 256, true
	}
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return 0, false
	}
	return n, true
}
