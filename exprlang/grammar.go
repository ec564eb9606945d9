package exprlang

import (
	"sync"

	"github.com/ccomendant/antlr4-c3/atn"
)

// Rule indexes of the expression grammar:
//
//	expression:       assignment | simpleExpression
//	assignment:       ('var' | 'let') ID '=' simpleExpression
//	simpleExpression: operand (('+'|'-'|'*'|'/') operand)*
//	                  with operand: variableRef | functionRef
//	variableRef:      ID
//	functionRef:      ID '(' ')'
const (
	RuleExpression atn.RuleIndex = iota
	RuleAssignment
	RuleSimpleExpression
	RuleVariableRef
	RuleFunctionRef
)

var (
	grammarOnce sync.Once
	grammarATN  *atn.ATN
)

// Grammar returns the ATN of the expression grammar. The network is built
// once and shared; it is immutable and safe for concurrent use.
func Grammar() *atn.ATN {
	grammarOnce.Do(func() {
		network, err := buildGrammar()
		if err != nil {
			panic("exprlang: " + err.Error())
		}
		grammarATN = network
	})
	return grammarATN
}

func buildGrammar() (*atn.ATN, error) {
	b := atn.NewBuilder()

	expression := b.DeclareRule("expression")
	assignment := b.DeclareRule("assignment")
	simpleExpression := b.DeclareRule("simpleExpression")
	variableRef := b.DeclareRule("variableRef")
	functionRef := b.DeclareRule("functionRef")

	b.Define(expression, b.Choice(
		b.RuleRef(assignment),
		b.RuleRef(simpleExpression),
	))

	b.Define(assignment, b.Seq(
		b.Choice(b.Token(TokenVar), b.Token(TokenLet)),
		b.Token(TokenID),
		b.Token(TokenEqual),
		b.RuleRef(simpleExpression),
	))

	operand := func() atn.Fragment {
		return b.Choice(b.RuleRef(variableRef), b.RuleRef(functionRef))
	}
	operator := b.Choice(
		b.Token(TokenPlus),
		b.Token(TokenMinus),
		b.Token(TokenMultiply),
		b.Token(TokenDivide),
	)
	b.Define(simpleExpression, b.Seq(
		operand(),
		b.Star(b.Seq(operator, operand())),
	))

	b.Define(variableRef, b.Token(TokenID))

	b.Define(functionRef, b.Seq(
		b.Token(TokenID),
		b.Token(TokenOpenPar),
		b.Token(TokenClosePar),
	))

	return b.Build()
}
