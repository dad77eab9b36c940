package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/0xkitsune/solstat/pkg/analyzer"
	"github.com/0xkitsune/solstat/pkg/detect"
)

func TestGenerateEmptyResult(t *testing.T) {
	assert.Equal(t, "", Generate(analyzer.Result{}))
}

func TestGenerateOrdersCategoriesAndCountsFindings(t *testing.T) {
	result := analyzer.Result{
		detect.FloatingPragma: {{File: "A.sol", Lines: []int{1}}},
		detect.AddressBalance: {{File: "A.sol", Lines: []int{2, 5}}, {File: "B.sol", Lines: []int{9}}},
		detect.ConstructorOrder: {{File: "A.sol", Lines: []int{3}}},
	}

	out := Generate(result)

	vulnIdx := strings.Index(out, "Vulnerabilities")
	optIdx := strings.Index(out, "Optimizations")
	qaIdx := strings.Index(out, "QA")
	assert.True(t, vulnIdx >= 0 && optIdx > vulnIdx && qaIdx > optIdx)

	assert.Contains(t, out, "- A.sol:2")
	assert.Contains(t, out, "- B.sol:9")
	assert.Contains(t, out, "Total Findings 3") // address_balance: 2 lines in A.sol + 1 in B.sol
	assert.Contains(t, out, "Total Findings 1") // floating_pragma and constructor_order, 1 each
}
