// Package lsp exposes the completion engine as a Language Server Protocol
// server over expression files.
package lsp

import (
	"fmt"
	"strings"
	"sync"

	"github.com/ccomendant/antlr4-c3/atn"
	"github.com/ccomendant/antlr4-c3/completion"
	"github.com/ccomendant/antlr4-c3/exprlang"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "antlr4-c3"

var log = commonlog.GetLogger("c3.lsp")

// Server is an LSP server answering textDocument/completion requests with
// grammar-derived candidates. Documents are kept in memory and replaced
// wholesale on every change.
type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string

	mu        sync.Mutex
	documents map[string]string
}

// NewServer returns a server advertising the given version.
func NewServer(version string) *Server {
	s := &Server{
		version:   version,
		documents: make(map[string]string),
	}

	s.handler = protocol.Handler{
		Initialize:             s.initialize,
		Initialized:            s.initialized,
		Shutdown:               s.shutdown,
		SetTrace:               s.setTrace,
		TextDocumentDidOpen:    s.textDocumentDidOpen,
		TextDocumentDidChange:  s.textDocumentDidChange,
		TextDocumentDidClose:   s.textDocumentDidClose,
		TextDocumentDidSave:    s.textDocumentDidSave,
		TextDocumentCompletion: s.textDocumentCompletion,
	}

	s.server = server.NewServer(&s.handler, lsName, false)

	return s
}

// RunStdio serves LSP over stdin/stdout until the client disconnects.
func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: []string{"=", "+", "-", "*", "/", "("},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Infof("initialized %s %s", lsName, s.version)
	return nil
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.setDocument(string(params.TextDocument.URI), params.TextDocument.Text)
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if whole, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		s.setDocument(string(params.TextDocument.URI), whole.Text)
	}
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.mu.Lock()
	delete(s.documents, string(params.TextDocument.URI))
	s.mu.Unlock()
	return nil
}

func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		s.setDocument(string(params.TextDocument.URI), *params.Text)
	}
	return nil
}

func (s *Server) textDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (any, error) {
	uri := string(params.TextDocument.URI)
	text, ok := s.getDocument(uri)
	if !ok {
		return nil, nil
	}

	stream := exprlang.Scan([]byte(text), uri)
	offset := offsetAt(text, params.Position)
	caret := stream.CaretTokenIndex(offset)

	core := completion.NewCodeCompletionCore(exprlang.Grammar(), stream)
	core.PreferredRules[exprlang.RuleVariableRef] = true
	core.PreferredRules[exprlang.RuleFunctionRef] = true

	candidates, err := core.CollectCandidates(caret, nil)
	if err != nil {
		log.Errorf("completion at %s:%d failed: %s", uri, caret, err.Error())
		return nil, nil
	}

	items := completionItems(candidates)
	log.Debugf("completion at %s:%d: %d items", uri, caret, len(items))
	if len(items) == 0 {
		return nil, nil
	}
	return items, nil
}

func (s *Server) setDocument(uri, text string) {
	s.mu.Lock()
	s.documents[uri] = text
	s.mu.Unlock()
}

func (s *Server) getDocument(uri string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	text, ok := s.documents[uri]
	return text, ok
}

// completionItems shapes a candidate collection into LSP completion items.
// Fixed tokens become keyword/operator items whose insert text includes the
// follow chain as a snippet; preferred rules become placeholder items named
// after the rule.
func completionItems(candidates *completion.CandidatesCollection) []protocol.CompletionItem {
	var items []protocol.CompletionItem

	for _, tok := range candidates.TokenTypes() {
		label := exprlang.TokenLiteral(tok)
		kind := protocol.CompletionItemKindOperator
		switch tok {
		case exprlang.TokenVar, exprlang.TokenLet:
			kind = protocol.CompletionItemKindKeyword
		case exprlang.TokenID:
			label = "identifier"
			kind = protocol.CompletionItemKindText
		}
		if label == "" {
			continue
		}
		insertText := insertTextFor(tok, candidates.Tokens[tok])
		format := protocol.InsertTextFormatSnippet
		detail := exprlang.TokenName(tok)
		items = append(items, protocol.CompletionItem{
			Label:            label,
			Kind:             &kind,
			Detail:           &detail,
			InsertText:       &insertText,
			InsertTextFormat: &format,
		})
	}

	for _, rule := range candidates.RuleIndexes() {
		name := exprlang.Grammar().RuleName(rule)
		kind := protocol.CompletionItemKindVariable
		if rule == exprlang.RuleFunctionRef {
			kind = protocol.CompletionItemKindFunction
		}
		detail := fmt.Sprintf("starts at token %d", candidates.Rules[rule].StartTokenIndex)
		items = append(items, protocol.CompletionItem{
			Label:  name,
			Kind:   &kind,
			Detail: &detail,
		})
	}

	return items
}

// insertTextFor renders a token candidate and its follow chain as a snippet:
// "var" with chain [ID, EQUAL] becomes "var ${1:name} =".
func insertTextFor(tok atn.TokenType, chain []atn.TokenType) string {
	var sb strings.Builder
	placeholder := 1
	write := func(t atn.TokenType) {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		if literal := exprlang.TokenLiteral(t); literal != "" {
			sb.WriteString(literal)
		} else {
			fmt.Fprintf(&sb, "${%d:name}", placeholder)
			placeholder++
		}
	}
	write(tok)
	for _, t := range chain {
		write(t)
	}
	return sb.String()
}

// offsetAt converts an LSP line/character position to a byte offset.
func offsetAt(text string, pos protocol.Position) int {
	offset := 0
	line := uint32(0)
	for line < pos.Line {
		next := strings.IndexByte(text[offset:], '\n')
		if next < 0 {
			return len(text)
		}
		offset += next + 1
		line++
	}
	remaining := len(text) - offset
	column := int(pos.Character)
	if column > remaining {
		column = remaining
	}
	if lineEnd := strings.IndexByte(text[offset:], '\n'); lineEnd >= 0 && column > lineEnd {
		column = lineEnd
	}
	return offset + column
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(kind protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &kind
}
