package atn

import "fmt"

// StateID identifies a state in the network.
type StateID int

// RuleIndex identifies a grammar rule.
type RuleIndex int

// TokenType identifies a lexer token type. User-defined token types start at
// MinTokenType; TokenEOF marks the end of the stream.
type TokenType int

const (
	TokenEOF     TokenType = -1
	MinTokenType TokenType = 1
)

// InvalidState is used where a state reference is intentionally absent, such
// as the follow state of the outermost call-stack frame.
const InvalidState StateID = -1

// StateKind classifies a state. Only RuleStop changes traversal behavior; the
// remaining kinds describe the shape of the network for debugging and
// validation.
type StateKind int

const (
	StateBasic StateKind = iota
	StateRuleStart
	StateRuleStop
	StateBlockStart
	StateBlockEnd
	StateLoopEntry
)

var stateKindNames = []string{
	"basic",
	"rule start",
	"rule stop",
	"block start",
	"block end",
	"loop entry",
}

func (k StateKind) String() string {
	if int(k) < len(stateKindNames) {
		return stateKindNames[k]
	}
	return fmt.Sprintf("StateKind(%d)", int(k))
}

// State is a single network state. States are immutable once the owning ATN
// has been built.
type State struct {
	ID          StateID
	Kind        StateKind
	Rule        RuleIndex
	Transitions []Transition
}
