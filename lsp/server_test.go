package lsp

import (
	"testing"

	"github.com/ccomendant/antlr4-c3/atn"
	"github.com/ccomendant/antlr4-c3/completion"
	"github.com/ccomendant/antlr4-c3/exprlang"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestOffsetAt(t *testing.T) {
	text := "var a = 1\nlet b = 2\n"

	tests := []struct {
		line, character uint32
		want            int
	}{
		{0, 0, 0},
		{0, 4, 4},
		{1, 0, 10},
		{1, 4, 14},
		{0, 99, 9},  // clamped to the line end
		{5, 0, 20},  // clamped to the text end
	}
	for _, tt := range tests {
		pos := protocol.Position{Line: tt.line, Character: tt.character}
		if got := offsetAt(text, pos); got != tt.want {
			t.Errorf("offsetAt(%d:%d) = %d, want %d", tt.line, tt.character, got, tt.want)
		}
	}
}

func TestInsertTextFor(t *testing.T) {
	got := insertTextFor(exprlang.TokenVar, []atn.TokenType{exprlang.TokenID, exprlang.TokenEqual})
	if got != "var ${1:name} =" {
		t.Errorf("insertTextFor(var) = %q", got)
	}
	got = insertTextFor(exprlang.TokenOpenPar, []atn.TokenType{exprlang.TokenClosePar})
	if got != "( )" {
		t.Errorf("insertTextFor(open paren) = %q", got)
	}
}

func TestCompletionItems(t *testing.T) {
	stream := exprlang.Scan([]byte("var c = a + b()"), "test.expr")
	core := completion.NewCodeCompletionCore(exprlang.Grammar(), stream)
	candidates, err := core.CollectCandidates(0, nil)
	if err != nil {
		t.Fatalf("CollectCandidates failed: %s", err)
	}

	items := completionItems(candidates)
	byLabel := make(map[string]protocol.CompletionItem, len(items))
	for _, item := range items {
		byLabel[item.Label] = item
	}

	keyword, ok := byLabel["var"]
	if !ok {
		t.Fatalf("no item for the var keyword, items = %v", items)
	}
	if keyword.Kind == nil || *keyword.Kind != protocol.CompletionItemKindKeyword {
		t.Errorf("var item kind = %v, want keyword", keyword.Kind)
	}
	if keyword.InsertText == nil || *keyword.InsertText != "var ${1:name} =" {
		t.Errorf("var insert text = %v", keyword.InsertText)
	}

	ident, ok := byLabel["identifier"]
	if !ok {
		t.Fatalf("no item for the identifier token, items = %v", items)
	}
	if ident.Kind == nil || *ident.Kind != protocol.CompletionItemKindText {
		t.Errorf("identifier item kind = %v, want text", ident.Kind)
	}
}

func TestCompletionItemsForPreferredRules(t *testing.T) {
	stream := exprlang.Scan([]byte("var c = a + b"), "test.expr")
	core := completion.NewCodeCompletionCore(exprlang.Grammar(), stream)
	core.IgnoredTokens[exprlang.TokenID] = true
	core.PreferredRules[exprlang.RuleVariableRef] = true
	core.PreferredRules[exprlang.RuleFunctionRef] = true

	candidates, err := core.CollectCandidates(10, nil)
	if err != nil {
		t.Fatalf("CollectCandidates failed: %s", err)
	}

	items := completionItems(candidates)
	byLabel := make(map[string]protocol.CompletionItem, len(items))
	for _, item := range items {
		byLabel[item.Label] = item
	}

	variable, ok := byLabel["variableRef"]
	if !ok {
		t.Fatalf("no item for variableRef, items = %v", items)
	}
	if variable.Kind == nil || *variable.Kind != protocol.CompletionItemKindVariable {
		t.Errorf("variableRef kind = %v, want variable", variable.Kind)
	}

	function, ok := byLabel["functionRef"]
	if !ok {
		t.Fatalf("no item for functionRef, items = %v", items)
	}
	if function.Kind == nil || *function.Kind != protocol.CompletionItemKindFunction {
		t.Errorf("functionRef kind = %v, want function", function.Kind)
	}
}

func TestDocumentLifecycle(t *testing.T) {
	s := NewServer("test")

	s.setDocument("file:///a.expr", "var a = 1")
	if text, ok := s.getDocument("file:///a.expr"); !ok || text != "var a = 1" {
		t.Errorf("getDocument = %q, %v", text, ok)
	}

	s.setDocument("file:///a.expr", "let b = 2")
	if text, _ := s.getDocument("file:///a.expr"); text != "let b = 2" {
		t.Errorf("after replace: getDocument = %q", text)
	}

	if _, ok := s.getDocument("file:///missing.expr"); ok {
		t.Errorf("getDocument of unknown uri should report absence")
	}
}
