package atn

import "fmt"

// TransitionKind classifies an edge between two states. The set of kinds is
// fixed, so traversal code dispatches with an exhaustive switch rather than
// through an interface.
type TransitionKind int

const (
	// TransitionEpsilon consumes nothing.
	TransitionEpsilon TransitionKind = iota
	// TransitionAtom consumes exactly one token type.
	TransitionAtom
	// TransitionSet consumes one of several token types.
	TransitionSet
	// TransitionRule invokes another rule; Follow is the state to resume at
	// once the invoked rule reaches its stop state.
	TransitionRule
	// TransitionWildcard consumes any single token.
	TransitionWildcard
	// TransitionAction and TransitionPrecedence are traversed like epsilon.
	TransitionAction
	TransitionPrecedence
)

var transitionKindNames = []string{
	"epsilon",
	"atom",
	"set",
	"rule",
	"wildcard",
	"action",
	"precedence",
}

func (k TransitionKind) String() string {
	if int(k) < len(transitionKindNames) {
		return transitionKindNames[k]
	}
	return fmt.Sprintf("TransitionKind(%d)", int(k))
}

// Transition is an edge from one state to another. Labels is populated for
// atom (one entry) and set (one or more) transitions; Rule and Follow are
// populated for rule transitions.
type Transition struct {
	Kind   TransitionKind
	Target StateID
	Labels []TokenType
	Rule   RuleIndex
	Follow StateID
}

// ConsumesToken reports whether taking the transition consumes input.
func (t Transition) ConsumesToken() bool {
	switch t.Kind {
	case TransitionAtom, TransitionSet, TransitionWildcard:
		return true
	default:
		return false
	}
}

// Matches reports whether the transition can consume the given token type.
func (t Transition) Matches(tok TokenType) bool {
	switch t.Kind {
	case TransitionAtom, TransitionSet:
		for _, label := range t.Labels {
			if label == tok {
				return true
			}
		}
		return false
	case TransitionWildcard:
		return tok != TokenEOF
	default:
		return false
	}
}
