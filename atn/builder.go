package atn

import "fmt"

// Fragment is a partial network with a single entry and a single exit state.
// Combinators on the Builder connect fragments with epsilon transitions.
type Fragment struct {
	Start StateID
	End   StateID
}

// Builder assembles an ATN programmatically. Declare all rules first, then
// define each rule's body from fragments; Build validates the result.
//
// States created by combinators belong to the rule whose Define call follows
// them, so a rule's body must be assembled completely before it is defined.
type Builder struct {
	states    []State
	ruleStart []StateID
	ruleStop  []StateID
	ruleNames []string
	defined   []bool
	pending   []StateID
	maxToken  TokenType
	errs      []error
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// DeclareRule registers a rule and creates its start and stop states.
func (b *Builder) DeclareRule(name string) RuleIndex {
	rule := RuleIndex(len(b.ruleNames))
	start := b.newOwnedState(StateRuleStart, rule)
	stop := b.newOwnedState(StateRuleStop, rule)
	b.ruleNames = append(b.ruleNames, name)
	b.ruleStart = append(b.ruleStart, start)
	b.ruleStop = append(b.ruleStop, stop)
	b.defined = append(b.defined, false)
	return rule
}

// Token returns a fragment consuming exactly one token of the given type.
func (b *Builder) Token(tok TokenType) Fragment {
	start := b.newState(StateBasic)
	end := b.newState(StateBasic)
	b.addTransition(start, Transition{Kind: TransitionAtom, Target: end, Labels: []TokenType{tok}})
	b.noteToken(tok)
	return Fragment{start, end}
}

// TokenSet returns a fragment consuming one token out of the given types.
func (b *Builder) TokenSet(toks ...TokenType) Fragment {
	start := b.newState(StateBasic)
	end := b.newState(StateBasic)
	labels := make([]TokenType, len(toks))
	copy(labels, toks)
	b.addTransition(start, Transition{Kind: TransitionSet, Target: end, Labels: labels})
	for _, tok := range toks {
		b.noteToken(tok)
	}
	return Fragment{start, end}
}

// Any returns a fragment consuming any single token.
func (b *Builder) Any() Fragment {
	start := b.newState(StateBasic)
	end := b.newState(StateBasic)
	b.addTransition(start, Transition{Kind: TransitionWildcard, Target: end})
	return Fragment{start, end}
}

// RuleRef returns a fragment invoking another rule. The fragment's end state
// is recorded as the follow state the invocation resumes at.
func (b *Builder) RuleRef(rule RuleIndex) Fragment {
	start := b.newState(StateBasic)
	end := b.newState(StateBasic)
	if rule < 0 || int(rule) >= len(b.ruleNames) {
		b.errs = append(b.errs, fmt.Errorf("atn: reference to undeclared rule %d", rule))
		return Fragment{start, end}
	}
	b.addTransition(start, Transition{
		Kind:   TransitionRule,
		Target: b.ruleStart[rule],
		Rule:   rule,
		Follow: end,
	})
	return Fragment{start, end}
}

// Seq chains fragments left to right.
func (b *Builder) Seq(frags ...Fragment) Fragment {
	if len(frags) == 0 {
		start := b.newState(StateBasic)
		end := b.newState(StateBasic)
		b.epsilon(start, end)
		return Fragment{start, end}
	}
	for i := 0; i+1 < len(frags); i++ {
		b.epsilon(frags[i].End, frags[i+1].Start)
	}
	return Fragment{frags[0].Start, frags[len(frags)-1].End}
}

// Choice branches into one of the given alternatives.
func (b *Builder) Choice(alts ...Fragment) Fragment {
	start := b.newState(StateBlockStart)
	end := b.newState(StateBlockEnd)
	if len(alts) == 0 {
		b.errs = append(b.errs, fmt.Errorf("atn: choice with no alternatives"))
		b.epsilon(start, end)
		return Fragment{start, end}
	}
	for _, alt := range alts {
		b.epsilon(start, alt.Start)
		b.epsilon(alt.End, end)
	}
	return Fragment{start, end}
}

// Star repeats the fragment zero or more times.
func (b *Builder) Star(body Fragment) Fragment {
	entry := b.newState(StateLoopEntry)
	exit := b.newState(StateBasic)
	b.epsilon(entry, body.Start)
	b.epsilon(entry, exit)
	b.epsilon(body.End, entry)
	return Fragment{entry, exit}
}

// Opt matches the fragment zero or one time.
func (b *Builder) Opt(body Fragment) Fragment {
	start := b.newState(StateBlockStart)
	end := b.newState(StateBlockEnd)
	b.epsilon(start, body.Start)
	b.epsilon(body.End, end)
	b.epsilon(start, end)
	return Fragment{start, end}
}

// Define wires a rule's start and stop states to its body and claims all
// states created since the previous Define for that rule.
func (b *Builder) Define(rule RuleIndex, body Fragment) {
	if rule < 0 || int(rule) >= len(b.ruleNames) {
		b.errs = append(b.errs, fmt.Errorf("atn: define of undeclared rule %d", rule))
		return
	}
	if b.defined[rule] {
		b.errs = append(b.errs, fmt.Errorf("atn: rule %s defined twice", b.ruleNames[rule]))
		return
	}
	b.defined[rule] = true
	b.epsilon(b.ruleStart[rule], body.Start)
	b.epsilon(body.End, b.ruleStop[rule])
	for _, id := range b.pending {
		b.states[id].Rule = rule
	}
	b.pending = b.pending[:0]
}

// Build finalizes and validates the network.
func (b *Builder) Build() (*ATN, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}
	for rule, ok := range b.defined {
		if !ok {
			return nil, fmt.Errorf("atn: rule %s has no body", b.ruleNames[rule])
		}
	}
	if len(b.pending) > 0 {
		return nil, fmt.Errorf("atn: %d states not claimed by any rule", len(b.pending))
	}
	a := &ATN{
		states:       b.states,
		ruleStart:    b.ruleStart,
		ruleStop:     b.ruleStop,
		ruleNames:    b.ruleNames,
		maxTokenType: b.maxToken,
	}
	if err := a.Check(); err != nil {
		return nil, err
	}
	return a, nil
}

func (b *Builder) newState(kind StateKind) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{ID: id, Kind: kind, Rule: -1})
	b.pending = append(b.pending, id)
	return id
}

func (b *Builder) newOwnedState(kind StateKind, rule RuleIndex) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{ID: id, Kind: kind, Rule: rule})
	return id
}

func (b *Builder) addTransition(from StateID, t Transition) {
	b.states[from].Transitions = append(b.states[from].Transitions, t)
}

func (b *Builder) epsilon(from, to StateID) {
	b.addTransition(from, Transition{Kind: TransitionEpsilon, Target: to})
}

func (b *Builder) noteToken(tok TokenType) {
	if tok > b.maxToken {
		b.maxToken = tok
	}
}
