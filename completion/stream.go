package completion

import "github.com/ccomendant/antlr4-c3/atn"

// Channel tells whether a token takes part in parsing or is skipped trivia.
type Channel int

const (
	ChannelDefault Channel = 0
	ChannelHidden  Channel = 1
)

// Token is the view of a stream token the engine needs: its type and the
// channel it was emitted on.
type Token struct {
	Type    atn.TokenType
	Channel Channel
}

// TokenStream supplies tokens by index. Indexes cover hidden-channel tokens
// too; the engine skips those itself. A stream must not change for the
// duration of a collection call.
type TokenStream interface {
	Get(i int) Token
	Size() int
}

// TokenSlice is a TokenStream over an in-memory slice.
type TokenSlice []Token

func (s TokenSlice) Get(i int) Token { return s[i] }

func (s TokenSlice) Size() int { return len(s) }
