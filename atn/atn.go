// Package atn models a parser grammar as an augmented transition network: a
// nondeterministic automaton whose states are connected by transitions that
// consume a token, invoke another rule, or require nothing. The network is an
// immutable, read-only description; it is assembled once through a Builder
// and then only queried.
package atn

import "fmt"

// ATN is a complete network for one grammar. All accessors are read-only and
// safe for concurrent use.
type ATN struct {
	states       []State
	ruleStart    []StateID
	ruleStop     []StateID
	ruleNames    []string
	maxTokenType TokenType
}

// NumStates returns the number of states in the network.
func (a *ATN) NumStates() int { return len(a.states) }

// NumRules returns the number of rules in the network.
func (a *ATN) NumRules() int { return len(a.ruleNames) }

// MaxTokenType returns the largest token type any transition may consume.
func (a *ATN) MaxTokenType() TokenType { return a.maxTokenType }

// State returns the state with the given id.
func (a *ATN) State(id StateID) (*State, error) {
	if id < 0 || int(id) >= len(a.states) {
		return nil, fmt.Errorf("atn: state %d out of range [0, %d)", id, len(a.states))
	}
	return &a.states[id], nil
}

// Transitions returns the outgoing transitions of the given state.
func (a *ATN) Transitions(id StateID) ([]Transition, error) {
	s, err := a.State(id)
	if err != nil {
		return nil, err
	}
	return s.Transitions, nil
}

// StartState returns the start state of the given rule.
func (a *ATN) StartState(rule RuleIndex) (StateID, error) {
	if rule < 0 || int(rule) >= len(a.ruleStart) {
		return InvalidState, fmt.Errorf("atn: rule %d out of range [0, %d)", rule, len(a.ruleStart))
	}
	return a.ruleStart[rule], nil
}

// StopState returns the stop state of the given rule.
func (a *ATN) StopState(rule RuleIndex) (StateID, error) {
	if rule < 0 || int(rule) >= len(a.ruleStop) {
		return InvalidState, fmt.Errorf("atn: rule %d out of range [0, %d)", rule, len(a.ruleStop))
	}
	return a.ruleStop[rule], nil
}

// RuleOf returns the rule the given state belongs to.
func (a *ATN) RuleOf(id StateID) (RuleIndex, error) {
	s, err := a.State(id)
	if err != nil {
		return 0, err
	}
	return s.Rule, nil
}

// RuleName returns the declared name of the given rule, or a synthetic name
// for an unknown index.
func (a *ATN) RuleName(rule RuleIndex) string {
	if rule < 0 || int(rule) >= len(a.ruleNames) {
		return fmt.Sprintf("rule-%d", rule)
	}
	return a.ruleNames[rule]
}

// Check validates the structural consistency of the network: every rule has a
// start and stop state of the right kind, every transition target is in
// bounds, and every rule transition names a declared rule and a valid follow
// state. A failing check means the description is malformed and the engine
// cannot reason about it.
func (a *ATN) Check() error {
	if len(a.ruleStart) != len(a.ruleNames) || len(a.ruleStop) != len(a.ruleNames) {
		return fmt.Errorf("atn: %d rules but %d start and %d stop states",
			len(a.ruleNames), len(a.ruleStart), len(a.ruleStop))
	}
	for r := range a.ruleNames {
		start := a.ruleStart[r]
		if start < 0 || int(start) >= len(a.states) {
			return fmt.Errorf("atn: rule %s has no start state", a.ruleNames[r])
		}
		if a.states[start].Kind != StateRuleStart {
			return fmt.Errorf("atn: start state %d of rule %s is %s", start, a.ruleNames[r], a.states[start].Kind)
		}
		stop := a.ruleStop[r]
		if stop < 0 || int(stop) >= len(a.states) {
			return fmt.Errorf("atn: rule %s has no stop state", a.ruleNames[r])
		}
		if a.states[stop].Kind != StateRuleStop {
			return fmt.Errorf("atn: stop state %d of rule %s is %s", stop, a.ruleNames[r], a.states[stop].Kind)
		}
	}
	for i := range a.states {
		s := &a.states[i]
		for _, t := range s.Transitions {
			if t.Target < 0 || int(t.Target) >= len(a.states) {
				return fmt.Errorf("atn: state %d has transition to unknown state %d", s.ID, t.Target)
			}
			switch t.Kind {
			case TransitionAtom:
				if len(t.Labels) != 1 {
					return fmt.Errorf("atn: atom transition from state %d has %d labels", s.ID, len(t.Labels))
				}
			case TransitionSet:
				if len(t.Labels) == 0 {
					return fmt.Errorf("atn: set transition from state %d has no labels", s.ID)
				}
			case TransitionRule:
				if t.Rule < 0 || int(t.Rule) >= len(a.ruleNames) {
					return fmt.Errorf("atn: state %d invokes unknown rule %d", s.ID, t.Rule)
				}
				if t.Follow < 0 || int(t.Follow) >= len(a.states) {
					return fmt.Errorf("atn: rule transition from state %d has unknown follow state %d", s.ID, t.Follow)
				}
				if t.Target != a.ruleStart[t.Rule] {
					return fmt.Errorf("atn: rule transition from state %d does not target start of rule %s",
						s.ID, a.ruleNames[t.Rule])
				}
			}
		}
	}
	return nil
}
