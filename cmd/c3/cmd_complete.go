package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ccomendant/antlr4-c3/completion"
	"github.com/ccomendant/antlr4-c3/exprlang"
	"github.com/spf13/cobra"
)

func newCompleteCmd() *cobra.Command {
	var tokenIndex int
	var offset int
	var preferRefs bool
	var topDown bool
	var ignore []string

	cmd := &cobra.Command{
		Use:   "complete <file>",
		Short: "Print completion candidates at a caret position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			stream := exprlang.Scan(data, args[0])
			caret := tokenIndex
			if caret < 0 {
				if offset < 0 {
					return fmt.Errorf("one of --index or --offset is required")
				}
				caret = stream.CaretTokenIndex(offset)
			}

			core := completion.NewCodeCompletionCore(exprlang.Grammar(), stream)
			core.TranslateRulesTopDown = topDown
			if preferRefs {
				core.PreferredRules[exprlang.RuleVariableRef] = true
				core.PreferredRules[exprlang.RuleFunctionRef] = true
			}
			for _, name := range ignore {
				tok, err := exprlang.TokenByName(name)
				if err != nil {
					return err
				}
				core.IgnoredTokens[tok] = true
			}

			candidates, err := core.CollectCandidates(caret, nil)
			if err != nil {
				return fmt.Errorf("collect candidates: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "caret token %d\n", caret)
			fmt.Fprintln(out, "tokens:")
			for _, tok := range candidates.TokenTypes() {
				fmt.Fprintf(out, "  %s", exprlang.TokenName(tok))
				for _, follow := range candidates.Tokens[tok] {
					fmt.Fprintf(out, " %s", exprlang.TokenName(follow))
				}
				fmt.Fprintln(out)
			}
			fmt.Fprintln(out, "rules:")
			grammar := exprlang.Grammar()
			for _, rule := range candidates.RuleIndexes() {
				candidate := candidates.Rules[rule]
				path := make([]string, len(candidate.RuleList))
				for i, r := range candidate.RuleList {
					path[i] = grammar.RuleName(r)
				}
				fmt.Fprintf(out, "  %s start=%d path=%s\n",
					grammar.RuleName(rule), candidate.StartTokenIndex, strings.Join(path, "/"))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&tokenIndex, "index", "i", -1, "caret token index")
	cmd.Flags().IntVarP(&offset, "offset", "o", -1, "caret byte offset (used when --index is not set)")
	cmd.Flags().BoolVar(&preferRefs, "prefer-refs", false, "report variableRef/functionRef as rule candidates")
	cmd.Flags().BoolVar(&topDown, "top-down", false, "prefer the most deeply nested occurrence of a rule")
	cmd.Flags().StringSliceVar(&ignore, "ignore", nil, "token names to exclude from candidates")

	return cmd
}
