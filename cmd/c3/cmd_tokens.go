package main

import (
	"fmt"
	"os"

	"github.com/ccomendant/antlr4-c3/completion"
	"github.com/ccomendant/antlr4-c3/exprlang"
	"github.com/spf13/cobra"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Dump the token stream of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read file: %w", err)
			}

			out := cmd.OutOrStdout()
			for _, tok := range exprlang.Scan(data, args[0]).Tokens() {
				channel := "default"
				if tok.Channel == completion.ChannelHidden {
					channel = "hidden"
				}
				fmt.Fprintf(out, "%4d %-10s %-8s %q at %s\n",
					tok.Index, exprlang.TokenName(tok.Type), channel, tok.Text, tok.Pos)
			}
			return nil
		},
	}
}
