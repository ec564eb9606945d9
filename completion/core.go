// Package completion computes, for a grammar's ATN and a caret position in a
// token stream, the set of syntactically valid continuations at that
// position: the token types that could appear next and the preferred rules
// active there.
//
// The search has two modes per path. Before the caret it replays the real
// token prefix, following only transitions that match the input the parser
// actually saw; at the caret it branches exhaustively over every reachable
// transition without consuming further input. Rule invocations are tracked
// on an explicit call stack so sibling branches cannot corrupt each other's
// invocation history, and a per-call visited memo bounds the traversal on
// cyclic and recursive grammars.
package completion

import (
	"fmt"
	"strings"

	"github.com/ccomendant/antlr4-c3/atn"
)

// RuleContext anchors a collection call inside a known rule invocation
// instead of the configured entry rule. StartTokenIndex is the stream index
// at which that invocation began.
type RuleContext struct {
	Rule            atn.RuleIndex
	StartTokenIndex int
}

// CodeCompletionCore collects completion candidates against one ATN and one
// token stream. The exported fields are caller-owned configuration, read at
// the start of every collection call and never mutated by the engine; they
// may be changed between calls but not during one. A core value itself holds
// no state across calls, so concurrent calls are safe as long as each uses
// its own stream snapshot.
type CodeCompletionCore struct {
	network *atn.ATN
	stream  TokenStream

	// IgnoredTokens are token types never reported as candidates.
	IgnoredTokens map[atn.TokenType]bool
	// PreferredRules are reported as rule candidates instead of being
	// expanded into their constituent tokens.
	PreferredRules map[atn.RuleIndex]bool
	// TranslateRulesTopDown selects which occurrence wins when a preferred
	// rule is reachable at several nesting depths: false keeps the
	// first-recorded (outermost) occurrence, true the most deeply nested one.
	TranslateRulesTopDown bool
	// EntryRule is where collection starts when no context is given.
	EntryRule atn.RuleIndex
}

// NewCodeCompletionCore returns a core for the given network and stream.
func NewCodeCompletionCore(network *atn.ATN, stream TokenStream) *CodeCompletionCore {
	return &CodeCompletionCore{
		network:        network,
		stream:         stream,
		IgnoredTokens:  make(map[atn.TokenType]bool),
		PreferredRules: make(map[atn.RuleIndex]bool),
	}
}

// CollectCandidates returns the candidates at the given caret token index.
// The index counts hidden-channel tokens too; a caret on a hidden token is
// treated as sitting at the next default-channel token. A caret positioned
// past an unrecoverable parse failure yields an empty collection, not an
// error.
func (c *CodeCompletionCore) CollectCandidates(caretTokenIndex int, ctx *RuleContext) (*CandidatesCollection, error) {
	if c.stream == nil {
		return nil, fmt.Errorf("completion: no token stream")
	}
	if caretTokenIndex < 0 || caretTokenIndex >= c.stream.Size() {
		return nil, fmt.Errorf("completion: caret token index %d out of range [0, %d)",
			caretTokenIndex, c.stream.Size())
	}
	if err := c.network.Check(); err != nil {
		return nil, fmt.Errorf("completion: %w", err)
	}

	entry := c.EntryRule
	startIndex := 0
	if ctx != nil {
		entry = ctx.Rule
		startIndex = ctx.StartTokenIndex
		if startIndex < 0 || startIndex > caretTokenIndex {
			return nil, fmt.Errorf("completion: context start %d not before caret %d", startIndex, caretTokenIndex)
		}
	}

	col := &collector{
		network:    c.network,
		ignored:    cloneSet(c.IgnoredTokens),
		preferred:  cloneSet(c.PreferredRules),
		topDown:    c.TranslateRulesTopDown,
		visited:    make(map[visitKey]struct{}),
		candidates: newCandidatesCollection(),
	}

	// The default-channel prefix from the anchor up to and including the
	// caret token. The last entry is the token the caret sits on (or the
	// next meaningful one, if the caret is on hidden trivia).
	for i := startIndex; i < c.stream.Size(); i++ {
		tok := c.stream.Get(i)
		if tok.Channel != ChannelDefault {
			continue
		}
		col.tokens = append(col.tokens, streamToken{typ: tok.Type, index: i})
		if i >= caretTokenIndex || tok.Type == atn.TokenEOF {
			break
		}
	}
	if len(col.tokens) == 0 {
		return col.candidates, nil
	}

	start, err := c.network.StartState(entry)
	if err != nil {
		return nil, fmt.Errorf("completion: %w", err)
	}
	base := frame{rule: entry, follow: atn.InvalidState, start: col.tokens[0].index}
	if err := col.process(start, 0, []frame{base}); err != nil {
		return nil, fmt.Errorf("completion: %w", err)
	}
	return col.candidates, nil
}

// streamToken is one default-channel token of the replayed prefix, together
// with its index in the underlying stream.
type streamToken struct {
	typ   atn.TokenType
	index int
}

// frame is one call-stack entry: an open rule invocation, the state to
// resume at once it completes, and the stream index where it began. Frames
// are copied, never shared, when paths diverge.
type frame struct {
	rule   atn.RuleIndex
	follow atn.StateID
	start  int
}

type visitKey struct {
	state atn.StateID
	pos   int
	stack string
}

// collector holds the call-local state of one collection run. Nothing in it
// survives the call.
type collector struct {
	network    *atn.ATN
	tokens     []streamToken
	ignored    map[atn.TokenType]bool
	preferred  map[atn.RuleIndex]bool
	topDown    bool
	visited    map[visitKey]struct{}
	candidates *CandidatesCollection
}

// process explores one (state, input position, call stack) configuration.
// Positions before the last prefix token replay real input; the last
// position is the caret, where every transition is explored.
func (c *collector) process(state atn.StateID, pos int, stack []frame) error {
	key := visitKey{state: state, pos: pos, stack: stackSignature(stack)}
	if _, seen := c.visited[key]; seen {
		return nil
	}
	c.visited[key] = struct{}{}

	st, err := c.network.State(state)
	if err != nil {
		return err
	}

	if st.Kind == atn.StateRuleStop {
		if len(stack) <= 1 {
			// The entry rule completed; nothing to resume.
			return nil
		}
		top := stack[len(stack)-1]
		return c.process(top.follow, pos, cloneStack(stack[:len(stack)-1]))
	}

	atCaret := pos >= len(c.tokens)-1
	anchor := c.tokens[pos].index

	for _, tr := range st.Transitions {
		switch tr.Kind {
		case atn.TransitionEpsilon, atn.TransitionAction, atn.TransitionPrecedence:
			if err := c.process(tr.Target, pos, stack); err != nil {
				return err
			}

		case atn.TransitionRule:
			if ruleOpenAt(stack, tr.Rule, anchor) {
				// Re-entering a rule without having consumed input would
				// recurse forever on left-recursive grammars.
				continue
			}
			next := pushFrame(stack, frame{rule: tr.Rule, follow: tr.Follow, start: anchor})
			if atCaret && c.preferred[tr.Rule] {
				// Report the rule itself instead of expanding its body.
				c.translateStackToRuleIndex(next)
				continue
			}
			start, err := c.network.StartState(tr.Rule)
			if err != nil {
				return err
			}
			if err := c.process(start, pos, next); err != nil {
				return err
			}

		case atn.TransitionAtom, atn.TransitionSet:
			if atCaret {
				if c.translateStackToRuleIndex(stack) {
					continue
				}
				chain := c.followChain(tr.Target)
				for _, label := range tr.Labels {
					if c.ignored[label] {
						continue
					}
					c.addTokenCandidate(label, chain)
				}
			} else if tr.Matches(c.tokens[pos].typ) {
				if err := c.process(tr.Target, pos+1, stack); err != nil {
					return err
				}
			}

		case atn.TransitionWildcard:
			if atCaret {
				if c.translateStackToRuleIndex(stack) {
					continue
				}
				for t := atn.MinTokenType; t <= c.network.MaxTokenType(); t++ {
					if c.ignored[t] {
						continue
					}
					c.addTokenCandidate(t, []atn.TokenType{})
				}
			} else if tr.Matches(c.tokens[pos].typ) {
				if err := c.process(tr.Target, pos+1, stack); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// followChain collects the tokens that must literally follow a candidate:
// starting from the state after it, single-choice token transitions are
// appended (ignored tokens skipped transparently) until a branch point, a
// rule invocation or a rule boundary is reached.
func (c *collector) followChain(start atn.StateID) []atn.TokenType {
	chain := []atn.TokenType{}
	seen := make(map[atn.StateID]struct{})
	state := start
	for {
		if _, ok := seen[state]; ok {
			return chain
		}
		seen[state] = struct{}{}
		st, err := c.network.State(state)
		if err != nil || st.Kind == atn.StateRuleStop || len(st.Transitions) != 1 {
			return chain
		}
		tr := st.Transitions[0]
		switch tr.Kind {
		case atn.TransitionEpsilon, atn.TransitionAction, atn.TransitionPrecedence:
			state = tr.Target
		case atn.TransitionAtom, atn.TransitionSet:
			if len(tr.Labels) != 1 {
				return chain
			}
			if !c.ignored[tr.Labels[0]] {
				chain = append(chain, tr.Labels[0])
			}
			state = tr.Target
		default:
			return chain
		}
	}
}

func (c *collector) addTokenCandidate(tok atn.TokenType, chain []atn.TokenType) {
	existing, ok := c.candidates.Tokens[tok]
	if !ok {
		c.candidates.Tokens[tok] = chain
		return
	}
	if !equalChains(existing, chain) {
		// The token is reachable with different continuations; no single
		// chain is deterministic anymore.
		c.candidates.Tokens[tok] = []atn.TokenType{}
	}
}

// translateStackToRuleIndex reports every preferred rule on the call stack
// as a rule candidate. When a rule is open at several nesting depths, the
// scan direction decides which occurrence this site offers: outermost-first
// by default, innermost-first when translating top down. It returns true
// when any preferred rule was found, in which case the current path
// contributes no token candidates.
func (c *collector) translateStackToRuleIndex(stack []frame) bool {
	if len(c.preferred) == 0 {
		return false
	}
	found := false
	handled := make(map[atn.RuleIndex]bool, len(stack))
	visit := func(i int) {
		f := stack[i]
		if !c.preferred[f.rule] || handled[f.rule] {
			return
		}
		handled[f.rule] = true
		found = true
		c.recordRuleCandidate(stack, i)
	}
	if c.topDown {
		for i := len(stack) - 1; i >= 0; i-- {
			visit(i)
		}
	} else {
		for i := range stack {
			visit(i)
		}
	}
	return found
}

// recordRuleCandidate reconciles one preferred-rule occurrence against an
// already recorded one: bottom-up the first-recorded occurrence wins,
// top-down the most deeply nested (latest-starting) occurrence wins.
func (c *collector) recordRuleCandidate(stack []frame, i int) {
	f := stack[i]
	if existing, ok := c.candidates.Rules[f.rule]; ok {
		if !c.topDown || f.start < existing.StartTokenIndex {
			return
		}
	}
	path := make([]atn.RuleIndex, i)
	for j := 0; j < i; j++ {
		path[j] = stack[j].rule
	}
	c.candidates.Rules[f.rule] = CandidateRule{RuleList: path, StartTokenIndex: f.start}
}

func ruleOpenAt(stack []frame, rule atn.RuleIndex, start int) bool {
	for _, f := range stack {
		if f.rule == rule && f.start == start {
			return true
		}
	}
	return false
}

func pushFrame(stack []frame, f frame) []frame {
	next := make([]frame, len(stack)+1)
	copy(next, stack)
	next[len(stack)] = f
	return next
}

func cloneStack(stack []frame) []frame {
	next := make([]frame, len(stack))
	copy(next, stack)
	return next
}

func stackSignature(stack []frame) string {
	var sb strings.Builder
	for _, f := range stack {
		fmt.Fprintf(&sb, "%d:%d:%d;", f.rule, f.follow, f.start)
	}
	return sb.String()
}

func equalChains(a, b []atn.TokenType) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func cloneSet[K comparable](set map[K]bool) map[K]bool {
	out := make(map[K]bool, len(set))
	for k, v := range set {
		if v {
			out[k] = true
		}
	}
	return out
}
