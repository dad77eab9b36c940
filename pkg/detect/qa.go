package detect

import (
	"strings"

	"github.com/0xkitsune/solstat/internal/solidity"
	"github.com/0xkitsune/solstat/pkg/astutil"
)

// detectConstructorOrder flags a constructor declared after at least one
// other function in the same top-level contract. Modifiers do not count;
// every other function kind, receive and fallback included, does.
func detectConstructorOrder(su *solidity.SourceUnit) Locs {
	out := newLocs()
	for _, part := range su.Parts {
		cd, ok := part.(*solidity.ContractDefinition)
		if !ok {
			continue
		}
		var seen int
	parts:
		for _, cp := range cd.Parts {
			fn, ok := cp.(*solidity.FunctionDefinition)
			if !ok {
				continue
			}
			switch fn.Ty {
			case solidity.FunctionTyConstructor:
				if seen > 0 {
					out.add(fn.NodeLoc)
				}
				break parts
			case solidity.FunctionTyModifier:
				// Modifiers don't count toward the ordering.
			default:
				seen++
			}
		}
	}
	return out
}

func hasLeadingUnderscore(name string) bool {
	return strings.HasPrefix(name, "_")
}

func isPrivateOrInternal(v solidity.Visibility) bool {
	return v == solidity.VisibilityPrivate || v == solidity.VisibilityInternal
}

func isPublicOrExternal(v solidity.Visibility) bool {
	return v == solidity.VisibilityPublic || v == solidity.VisibilityExternal
}

// detectPrivateVarsLeadingUnderscore flags the naming-convention mismatch:
// a private/internal variable without a leading underscore, or a
// public/external one with one.
func detectPrivateVarsLeadingUnderscore(su *solidity.SourceUnit) Locs {
	out := newLocs()
	table := astutil.StorageVariables(su, true, true)
	for name, v := range table {
		if !v.HasVisibility {
			continue
		}
		underscored := hasLeadingUnderscore(name)
		if isPrivateOrInternal(v.Visibility) && !underscored {
			out.add(v.Loc)
		} else if isPublicOrExternal(v.Visibility) && underscored {
			out.add(v.Loc)
		}
	}
	return out
}

// detectPrivateFuncLeadingUnderscore flags the same naming-convention
// mismatch as detectPrivateVarsLeadingUnderscore, applied to ordinary
// `function` definitions (contract members and free functions alike) with
// an explicit visibility.
func detectPrivateFuncLeadingUnderscore(su *solidity.SourceUnit) Locs {
	out := newLocs()
	for _, fn := range walkFunctionDefinitions(su) {
		if fn.Ty != solidity.FunctionTyFunction || fn.Visibility == solidity.VisibilityNone {
			continue
		}
		underscored := hasLeadingUnderscore(fn.Name)
		switch {
		case isPublicOrExternal(fn.Visibility) && underscored:
			out.add(fn.NodeLoc)
		case isPrivateOrInternal(fn.Visibility) && !underscored:
			out.add(fn.NodeLoc)
		}
	}
	return out
}
