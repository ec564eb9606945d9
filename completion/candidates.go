package completion

import (
	"sort"

	"github.com/ccomendant/antlr4-c3/atn"
)

// CandidateRule describes one occurrence of a preferred rule reachable at the
// caret: the rule invocation chain above it, outermost first, and the token
// stream index at which the occurrence begins.
type CandidateRule struct {
	RuleList        []atn.RuleIndex
	StartTokenIndex int
}

// CandidatesCollection is the result of one collection call.
//
// Tokens maps each candidate token type to its follow chain: the short
// sequence of token types known to deterministically follow it. Rules maps
// each preferred rule reachable at the caret to its recorded occurrence.
// Key membership and chain content are significant; ordering is not.
type CandidatesCollection struct {
	Tokens map[atn.TokenType][]atn.TokenType
	Rules  map[atn.RuleIndex]CandidateRule
}

func newCandidatesCollection() *CandidatesCollection {
	return &CandidatesCollection{
		Tokens: make(map[atn.TokenType][]atn.TokenType),
		Rules:  make(map[atn.RuleIndex]CandidateRule),
	}
}

// TokenTypes returns the candidate token types in ascending order.
func (c *CandidatesCollection) TokenTypes() []atn.TokenType {
	types := make([]atn.TokenType, 0, len(c.Tokens))
	for t := range c.Tokens {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// RuleIndexes returns the candidate rule indexes in ascending order.
func (c *CandidatesCollection) RuleIndexes() []atn.RuleIndex {
	rules := make([]atn.RuleIndex, 0, len(c.Rules))
	for r := range c.Rules {
		rules = append(rules, r)
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i] < rules[j] })
	return rules
}
