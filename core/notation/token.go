package notation

import (
	"strings"

	"mandashop/core/types"
)

// Kind tags a lexed token
type Kind int

const (
	InvalidToken Kind = iota
	TierToken
	ZeroToken
	InfoToken
)

func (k Kind) String() string {
	switch k {
	case TierToken:
		return "tier"
	case ZeroToken:
		return "zeroed"
	case InfoToken:
		return "informational"
	}
	return "invalid"
}

// Token is one comma-separated piece of the input.
type Token struct {
	Kind Kind

	// Raw is the trimmed token as typed
	Raw string

	// Tier is set for tier tokens. Level is the digit, which may fall
	// outside the grammar's range.
	Tier  types.Tier
	Level int

	// Stat is set for zeroed and informational tokens
	Stat types.StatID
}

// InRange reports whether a tier token is accepted by g
func (t Token) InRange(g Grammar) bool {
	return t.Kind == TierToken && t.Tier >= g.MinTier && t.Tier <= g.MaxTier
}

// Split breaks the input on commas into trimmed, non-empty pieces.
func Split(input string) []string {
	var parts []string
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// Lex classifies every piece of the input under grammar g.
func Lex(input string, g Grammar) []Token {
	parts := Split(input)
	tokens := make([]Token, 0, len(parts))
	for _, part := range parts {
		tokens = append(tokens, lexOne(part, g))
	}
	return tokens
}

func lexOne(raw string, g Grammar) Token {
	tok := Token{Kind: InvalidToken, Raw: raw}

	if len(raw) == 2 && (raw[0] == 'F' || raw[0] == 'f') && raw[1] >= '0' && raw[1] <= '9' {
		tok.Kind = TierToken
		tok.Level = int(raw[1] - '0')
		tok.Tier = types.Tier(tok.Level)
		return tok
	}

	if len(raw) < 2 || strings.TrimSpace(raw[1:]) != raw[1:] {
		return tok
	}

	stat, ok := types.ParseStat(raw[1:])
	if !ok {
		return tok
	}

	switch raw[0] {
	case g.ZeroPrefix:
		tok.Kind = ZeroToken
		tok.Stat = stat
	case g.InfoPrefix:
		if g.InfoPrefix != 0 {
			tok.Kind = InfoToken
			tok.Stat = stat
		}
	}
	return tok
}
