package atn

import (
	"strings"
	"testing"
)

func TestBuilderTokenFragment(t *testing.T) {
	b := NewBuilder()
	r := b.DeclareRule("r")
	frag := b.Token(7)
	b.Define(r, frag)
	network, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %s", err)
	}

	trs, err := network.Transitions(frag.Start)
	if err != nil {
		t.Fatalf("Transitions failed: %s", err)
	}
	if len(trs) != 1 {
		t.Fatalf("got %d transitions, want 1", len(trs))
	}
	tr := trs[0]
	if tr.Kind != TransitionAtom || tr.Target != frag.End {
		t.Errorf("transition = %+v, want atom to %d", tr, frag.End)
	}
	if len(tr.Labels) != 1 || tr.Labels[0] != 7 {
		t.Errorf("labels = %v, want [7]", tr.Labels)
	}
	if network.MaxTokenType() != 7 {
		t.Errorf("MaxTokenType = %d, want 7", network.MaxTokenType())
	}
}

func TestBuilderRuleRefRecordsFollow(t *testing.T) {
	b := NewBuilder()
	outer := b.DeclareRule("outer")
	inner := b.DeclareRule("inner")
	frag := b.RuleRef(inner)
	b.Define(outer, frag)
	b.Define(inner, b.Token(1))
	network, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %s", err)
	}

	trs, _ := network.Transitions(frag.Start)
	if len(trs) != 1 || trs[0].Kind != TransitionRule {
		t.Fatalf("transitions = %+v, want a single rule transition", trs)
	}
	tr := trs[0]
	start, _ := network.StartState(inner)
	if tr.Target != start {
		t.Errorf("target = %d, want inner's start state %d", tr.Target, start)
	}
	if tr.Rule != inner {
		t.Errorf("rule = %d, want %d", tr.Rule, inner)
	}
	if tr.Follow != frag.End {
		t.Errorf("follow = %d, want fragment end %d", tr.Follow, frag.End)
	}
}

func TestBuilderStatesBelongToDefiningRule(t *testing.T) {
	b := NewBuilder()
	first := b.DeclareRule("first")
	second := b.DeclareRule("second")
	firstBody := b.Token(1)
	b.Define(first, firstBody)
	secondBody := b.Token(2)
	b.Define(second, secondBody)
	network, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %s", err)
	}

	if rule, _ := network.RuleOf(firstBody.Start); rule != first {
		t.Errorf("RuleOf(first body) = %d, want %d", rule, first)
	}
	if rule, _ := network.RuleOf(secondBody.Start); rule != second {
		t.Errorf("RuleOf(second body) = %d, want %d", rule, second)
	}
}

func TestBuilderErrors(t *testing.T) {
	tests := []struct {
		name    string
		build   func(b *Builder)
		wantErr string
	}{
		{
			name: "undefined rule",
			build: func(b *Builder) {
				r := b.DeclareRule("r")
				b.DeclareRule("empty")
				b.Define(r, b.Token(1))
			},
			wantErr: "no body",
		},
		{
			name: "reference to undeclared rule",
			build: func(b *Builder) {
				r := b.DeclareRule("r")
				b.Define(r, b.RuleRef(5))
			},
			wantErr: "undeclared rule",
		},
		{
			name: "empty choice",
			build: func(b *Builder) {
				r := b.DeclareRule("r")
				b.Define(r, b.Choice())
			},
			wantErr: "no alternatives",
		},
		{
			name: "rule defined twice",
			build: func(b *Builder) {
				r := b.DeclareRule("r")
				b.Define(r, b.Token(1))
				b.Define(r, b.Token(2))
			},
			wantErr: "defined twice",
		},
		{
			name: "unclaimed states",
			build: func(b *Builder) {
				r := b.DeclareRule("r")
				b.Define(r, b.Token(1))
				b.Token(2)
			},
			wantErr: "not claimed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			tt.build(b)
			_, err := b.Build()
			if err == nil {
				t.Fatalf("Build succeeded, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestBuilderStarAndOpt(t *testing.T) {
	b := NewBuilder()
	r := b.DeclareRule("r")
	b.Define(r, b.Seq(
		b.Star(b.Token(1)),
		b.Opt(b.Token(2)),
	))
	network, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %s", err)
	}

	entries := 0
	for id := StateID(0); int(id) < network.NumStates(); id++ {
		st, _ := network.State(id)
		if st.Kind == StateLoopEntry {
			entries++
			// The loop entry branches into the body and out of the loop.
			if len(st.Transitions) != 2 {
				t.Errorf("loop entry %d has %d transitions, want 2", id, len(st.Transitions))
			}
		}
	}
	if entries != 1 {
		t.Errorf("got %d loop entries, want 1", entries)
	}
}
