package bidi

import (
	"fmt"
	"sort"
	"unicode"

	"github.com/npillmayer/rubytext/core"
	"github.com/npillmayer/rubytext/engine/glyphing"
	ubidi "golang.org/x/text/unicode/bidi"
)

// TokenType is the category of a token.
type TokenType int8

// Token categories, in order of classification precedence.
const (
	ScriptLetter TokenType = iota // letter (or mark) of the right-to-left script
	ScriptDigit                   // digit of the right-to-left script
	Letter                        // any other letter
	Digit                         // any other digit
	Whitespace
	Control
	OpenBracket
	CloseBracket
	Other
)

var tokenTypeNames = [...]string{
	ScriptLetter: "ScriptLetter",
	ScriptDigit:  "ScriptDigit",
	Letter:       "Letter",
	Digit:        "Digit",
	Whitespace:   "Whitespace",
	Control:      "Control",
	OpenBracket:  "OpenBracket",
	CloseBracket: "CloseBracket",
	Other:        "Other",
}

func (tt TokenType) String() string {
	if tt < 0 || int(tt) >= len(tokenTypeNames) {
		return fmt.Sprintf("TokenType(%d)", int(tt))
	}
	return tokenTypeNames[tt]
}

// Token is a run of runes of the same category. Start and Length count runes.
// Brackets are always tokens of length 1.
type Token struct {
	Start, Length int
	Type          TokenType
	RTL           bool // resolved direction, set by Resolve
	bracket       rune // the bracket character for bracket tokens
}

// End is the rune index after the token.
func (t Token) End() int {
	return t.Start + t.Length
}

func (t Token) String() string {
	dir := "L"
	if t.RTL {
		dir = "R"
	}
	return fmt.Sprintf("[%d+%d %s %s]", t.Start, t.Length, t.Type, dir)
}

// Tokens is an ordered sequence of tokens covering a text without gaps.
type Tokens []Token

// Tokenize scans text once and splits it into tokens. script is the dominant
// script of the text. If it is a right-to-left script, its letters and digits
// are script letters and script digits. Characters with strong right-to-left
// bidi classes count as script characters regardless of script.
//
// Directions are left unresolved; call Resolve afterwards.
func Tokenize(text string, script glyphing.Script) Tokens {
	var table *unicode.RangeTable
	if script.Direction() == glyphing.RightToLeft {
		table = script.RangeTable()
	}
	tokens := make(Tokens, 0, len(text)/4+1)
	i := 0
	prev := Other
	for _, r := range text {
		tt := classify(r, table, prev, i > 0)
		n := len(tokens)
		if n > 0 && tokens[n-1].Type == tt && tt != OpenBracket && tt != CloseBracket {
			tokens[n-1].Length++
		} else {
			t := Token{Start: i, Length: 1, Type: tt}
			if tt == OpenBracket || tt == CloseBracket {
				t.bracket = r
			}
			tokens = append(tokens, t)
		}
		prev = tt
		i++
	}
	tracer().Debugf("tokenized %d runes into %d tokens", i, len(tokens))
	return tokens
}

func classify(r rune, script *unicode.RangeTable, prev TokenType, hasPrev bool) TokenType {
	props, _ := ubidi.LookupRune(r)
	class := props.Class()
	inScript := script != nil && unicode.Is(script, r)
	isDigit := unicode.IsDigit(r)
	switch {
	case (inScript || class == ubidi.R || class == ubidi.AL) && !isDigit:
		return ScriptLetter
	case (inScript || class == ubidi.AN) && isDigit:
		return ScriptDigit
	case unicode.IsLetter(r):
		return Letter
	case isDigit:
		return Digit
	case unicode.IsMark(r) && hasPrev && (prev == Letter || prev == ScriptLetter):
		return prev // combining marks stay with their base
	case unicode.IsSpace(r):
		return Whitespace
	case unicode.IsControl(r):
		return Control
	case props.IsOpeningBracket():
		return OpenBracket
	case props.IsBracket():
		return CloseBracket
	}
	return Other
}

// TokenAt returns the index of the token containing rune position pos, or -1.
func (ts Tokens) TokenAt(pos int) int {
	i := sort.Search(len(ts), func(i int) bool {
		return ts[i].End() > pos
	})
	if i < len(ts) && ts[i].Start <= pos {
		return i
	}
	return -1
}

// RightToLeftAt is true if the rune at position pos reads right-to-left.
// Positions outside the tokens read left-to-right.
func (ts Tokens) RightToLeftAt(pos int) bool {
	if i := ts.TokenAt(pos); i >= 0 {
		return ts[i].RTL
	}
	return false
}

// Len returns the number of runes covered.
func (ts Tokens) Len() int {
	if len(ts) == 0 {
		return 0
	}
	return ts[len(ts)-1].End()
}

func checkTokenType(tt TokenType) {
	if tt < ScriptLetter || tt > Other {
		panic(core.Unreachable("token type %d", int(tt)))
	}
}
