package bidi

import (
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/rubytext/core"
)

// Resolve sets the direction of every token. It is a single pass over the
// tokens followed by a pass for paired brackets. Directions are derived from
// token types only, so resolving again yields the same result.
//
// Script letters read right-to-left, script digits, Latin letters and digits
// read left-to-right. Everything else reads right-to-left, unless it sits
// inside a run of Latin letters: the second Latin letter token of a run flips
// every token since the first one to left-to-right. A digit following Latin
// letters flips and closes the run.
func Resolve(tokens Tokens) {
	latinRun := false
	runStart := 0
	for i := range tokens {
		t := &tokens[i]
		switch t.Type {
		case ScriptLetter:
			t.RTL = true
			latinRun = false
		case ScriptDigit:
			t.RTL = false
			latinRun = false
		case Letter:
			t.RTL = false
			if latinRun {
				setLTR(tokens, runStart, i)
			} else {
				latinRun = true
				runStart = i
			}
		case Digit:
			t.RTL = false
			if latinRun {
				setLTR(tokens, runStart, i)
				latinRun = false
			}
		case Whitespace, Control, OpenBracket, CloseBracket, Other:
			t.RTL = true
		default:
			panic(core.Unreachable("token type %d", int(t.Type)))
		}
	}
	pairBrackets(tokens)
}

// setLTR sets tokens from..to (inclusive) to left-to-right.
func setLTR(tokens Tokens, from, to int) {
	for j := from; j <= to; j++ {
		tokens[j].RTL = false
	}
}

type bracketEntry struct {
	bracket rune
	token   int
}

// pairBrackets finds pairs of brackets and makes a pair with Latin-only
// content read left-to-right, even if one of the brackets had been resolved
// to right-to-left. Closing brackets without an opening partner are ignored;
// unbalanced input leaves directions partially uncorrected.
func pairBrackets(tokens Tokens) {
	stack := arraystack.New()
	for i, t := range tokens {
		switch t.Type {
		case OpenBracket:
			stack.Push(bracketEntry{bracket: t.bracket, token: i})
		case CloseBracket:
			opening, ok := openingFor(t.bracket)
			if !ok {
				continue
			}
			entries := stack.Values() // top of stack first
			depth := -1
			for d, e := range entries {
				if e.(bracketEntry).bracket == opening {
					depth = d
					break
				}
			}
			if depth < 0 {
				tracer().Debugf("unmatched closing bracket %q at token %d", t.bracket, i)
				continue
			}
			for d := 0; d <= depth; d++ {
				stack.Pop()
			}
			open := entries[depth].(bracketEntry).token
			if (tokens[open].RTL || t.RTL) && isLatinSpan(tokens, open, i) {
				setLTR(tokens, open, i)
			}
		}
	}
	if !stack.Empty() {
		tracer().Debugf("%d opening brackets without partner", stack.Size())
	}
}

// isLatinSpan checks the tokens strictly between from and to: they must not
// contain script characters, but at least one Latin letter.
func isLatinSpan(tokens Tokens, from, to int) bool {
	hasLetter := false
	for j := from + 1; j < to; j++ {
		checkTokenType(tokens[j].Type)
		switch tokens[j].Type {
		case ScriptLetter, ScriptDigit:
			return false
		case Letter:
			hasLetter = true
		}
	}
	return hasLetter
}

// closingToOpening maps closing brackets to their opening partners. It holds
// all closing brackets of BidiBrackets.txt (Unicode 15).
var closingToOpening = map[rune]rune{
	')':      '(',
	']':      '[',
	'}':      '{',
	'\u0F3B': '\u0F3A',
	'\u0F3D': '\u0F3C',
	'\u169C': '\u169B',
	'\u2046': '\u2045',
	'\u207E': '\u207D',
	'\u208E': '\u208D',
	'\u2309': '\u2308',
	'\u230B': '\u230A',
	'\u232A': '\u2329',
	'\u2769': '\u2768',
	'\u276B': '\u276A',
	'\u276D': '\u276C',
	'\u276F': '\u276E',
	'\u2771': '\u2770',
	'\u2773': '\u2772',
	'\u2775': '\u2774',
	'\u27C6': '\u27C5',
	'\u27E7': '\u27E6',
	'\u27E9': '\u27E8',
	'\u27EB': '\u27EA',
	'\u27ED': '\u27EC',
	'\u27EF': '\u27EE',
	'\u2984': '\u2983',
	'\u2986': '\u2985',
	'\u2988': '\u2987',
	'\u298A': '\u2989',
	'\u298C': '\u298B',
	'\u298E': '\u298F',
	'\u2990': '\u298D',
	'\u2992': '\u2991',
	'\u2994': '\u2993',
	'\u2996': '\u2995',
	'\u2998': '\u2997',
	'\u29D9': '\u29D8',
	'\u29DB': '\u29DA',
	'\u29FD': '\u29FC',
	'\u2E23': '\u2E22',
	'\u2E25': '\u2E24',
	'\u2E27': '\u2E26',
	'\u2E29': '\u2E28',
	'\u2E56': '\u2E55',
	'\u2E58': '\u2E57',
	'\u2E5A': '\u2E59',
	'\u2E5C': '\u2E5B',
	'\u3009': '\u3008',
	'\u300B': '\u300A',
	'\u300D': '\u300C',
	'\u300F': '\u300E',
	'\u3011': '\u3010',
	'\u3015': '\u3014',
	'\u3017': '\u3016',
	'\u3019': '\u3018',
	'\u301B': '\u301A',
	'\uFE5A': '\uFE59',
	'\uFE5C': '\uFE5B',
	'\uFE5E': '\uFE5D',
	'\uFF09': '\uFF08',
	'\uFF3D': '\uFF3B',
	'\uFF5D': '\uFF5B',
	'\uFF60': '\uFF5F',
	'\uFF63': '\uFF62',
}

func openingFor(closing rune) (rune, bool) {
	r, ok := closingToOpening[closing]
	return r, ok
}
