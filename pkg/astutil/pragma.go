package astutil

import (
	"regexp"
	"strconv"

	"github.com/0xkitsune/solstat/internal/solidity"
	"github.com/0xkitsune/solstat/pkg/ast"
)

// Version is a parsed `major.minor.patch` solidity pragma version.
type Version struct {
	Major, Minor, Patch int
}

var versionPattern = regexp.MustCompile(`\d+\.\d+\.\d+`)

// SolidityVersion walks su for its `pragma solidity ...` directive and
// parses the first `\d+\.\d+\.\d+` substring of the version clause. It
// ignores range operators (^, >=, <, ~) entirely, the way spec.md's
// extractor does, so `^0.8.16` yields (0, 8, 16).
func SolidityVersion(su *solidity.SourceUnit) (Version, bool) {
	for _, node := range ast.WalkOne(ast.KindPragmaDirective, su) {
		pd := node.(*solidity.PragmaDirective)
		if pd.Name != "solidity" {
			continue
		}
		m := versionPattern.FindString(pd.Value)
		if m == "" {
			continue
		}
		parts := regexp.MustCompile(`\.`).Split(m, 3)
		major, _ := strconv.Atoi(parts[0])
		minor, _ := strconv.Atoi(parts[1])
		patch, _ := strconv.Atoi(parts[2])
		return Version{Major: major, Minor: minor, Patch: patch}, true
	}
	return Version{}, false
}
