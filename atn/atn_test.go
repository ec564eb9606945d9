package atn

import (
	"strings"
	"testing"
)

// twoStateNetwork is a minimal valid network: one rule whose start state
// jumps straight to its stop state.
func twoStateNetwork() *ATN {
	return &ATN{
		states: []State{
			{ID: 0, Kind: StateRuleStart, Rule: 0, Transitions: []Transition{
				{Kind: TransitionEpsilon, Target: 1},
			}},
			{ID: 1, Kind: StateRuleStop, Rule: 0},
		},
		ruleStart: []StateID{0},
		ruleStop:  []StateID{1},
		ruleNames: []string{"r"},
	}
}

func TestCheckAcceptsMinimalNetwork(t *testing.T) {
	if err := twoStateNetwork().Check(); err != nil {
		t.Errorf("Check failed: %s", err)
	}
}

func TestCheckRejectsMalformedNetworks(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(a *ATN)
		wantErr string
	}{
		{
			name:    "start state of wrong kind",
			mutate:  func(a *ATN) { a.states[0].Kind = StateBasic },
			wantErr: "start state",
		},
		{
			name:    "stop state of wrong kind",
			mutate:  func(a *ATN) { a.states[1].Kind = StateBasic },
			wantErr: "stop state",
		},
		{
			name:    "missing stop state",
			mutate:  func(a *ATN) { a.ruleStop[0] = 9 },
			wantErr: "no stop state",
		},
		{
			name:    "rule table size mismatch",
			mutate:  func(a *ATN) { a.ruleNames = append(a.ruleNames, "extra") },
			wantErr: "start and",
		},
		{
			name: "transition target out of range",
			mutate: func(a *ATN) {
				a.states[0].Transitions[0].Target = 42
			},
			wantErr: "unknown state",
		},
		{
			name: "atom without label",
			mutate: func(a *ATN) {
				a.states[0].Transitions[0] = Transition{Kind: TransitionAtom, Target: 1}
			},
			wantErr: "atom transition",
		},
		{
			name: "set without labels",
			mutate: func(a *ATN) {
				a.states[0].Transitions[0] = Transition{Kind: TransitionSet, Target: 1}
			},
			wantErr: "set transition",
		},
		{
			name: "rule transition to unknown rule",
			mutate: func(a *ATN) {
				a.states[0].Transitions[0] = Transition{Kind: TransitionRule, Target: 0, Rule: 3, Follow: 1}
			},
			wantErr: "unknown rule",
		},
		{
			name: "rule transition with bad follow state",
			mutate: func(a *ATN) {
				a.states[0].Transitions[0] = Transition{Kind: TransitionRule, Target: 0, Rule: 0, Follow: 42}
			},
			wantErr: "follow state",
		},
		{
			name: "rule transition not targeting rule start",
			mutate: func(a *ATN) {
				a.states[0].Transitions[0] = Transition{Kind: TransitionRule, Target: 1, Rule: 0, Follow: 1}
			},
			wantErr: "does not target start",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			network := twoStateNetwork()
			tt.mutate(network)
			err := network.Check()
			if err == nil {
				t.Fatalf("Check succeeded, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestAccessorBounds(t *testing.T) {
	network := twoStateNetwork()

	if _, err := network.State(-1); err == nil {
		t.Errorf("State(-1): expected error")
	}
	if _, err := network.State(2); err == nil {
		t.Errorf("State(2): expected error")
	}
	if _, err := network.StartState(1); err == nil {
		t.Errorf("StartState(1): expected error")
	}
	if _, err := network.StopState(-1); err == nil {
		t.Errorf("StopState(-1): expected error")
	}
	if name := network.RuleName(0); name != "r" {
		t.Errorf("RuleName(0) = %q, want %q", name, "r")
	}
	if name := network.RuleName(5); name != "rule-5" {
		t.Errorf("RuleName(5) = %q, want %q", name, "rule-5")
	}
}

func TestTransitionMatches(t *testing.T) {
	atom := Transition{Kind: TransitionAtom, Labels: []TokenType{3}}
	if !atom.Matches(3) || atom.Matches(4) {
		t.Errorf("atom matching is wrong")
	}

	set := Transition{Kind: TransitionSet, Labels: []TokenType{1, 2}}
	if !set.Matches(2) || set.Matches(3) {
		t.Errorf("set matching is wrong")
	}

	wild := Transition{Kind: TransitionWildcard}
	if !wild.Matches(1) || wild.Matches(TokenEOF) {
		t.Errorf("wildcard matching is wrong")
	}

	eps := Transition{Kind: TransitionEpsilon}
	if eps.Matches(1) || eps.ConsumesToken() {
		t.Errorf("epsilon should not consume")
	}
	if !atom.ConsumesToken() || !wild.ConsumesToken() {
		t.Errorf("consuming transitions misreported")
	}
}
