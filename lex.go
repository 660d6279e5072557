package quantops

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

type tokenKind int

const (
	tokScalar tokenKind = iota
	tokUnit
	tokGroupOpen
	tokGroupClose
	tokMul
	tokDiv
	tokExp
	tokUnc
	tokRng
	tokVar
)

type token struct {
	kind tokenKind
	area LocationArea
	num  float64
	text string
}

var (
	scalarRe = regexp.MustCompile(`^([+-] *)?(?:[0-9]* *\. *[0-9]+|[0-9]+(?: *\.)?)(?:[eE]([+-])?([0-9]+))?`)
	punctRe  = regexp.MustCompile(`^(\*\*|\*|/|\(|\)|\^|±|\+-|-|~)`)
	identRe  = regexp.MustCompile(`^[a-zA-Z_\x{00b5}\x{03bc}]+`)
)

// tokenize scans src into a flat token stream. A scalar is only recognized
// when the previous token was not itself a scalar, so that "3-2" lexes as a
// range between two scalars rather than a single negative one; the minus
// sign there falls to the punctuation rule and becomes a tokRng.
func tokenize(src LocatedString) ([]token, error) {
	var tokens []token
	text := src.String()
	cursor := 0

	for cursor < len(text) {
		rest := text[cursor:]

		if r := rest[0]; r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			cursor++
			continue
		}

		if len(tokens) == 0 || tokens[len(tokens)-1].kind != tokScalar {
			if m := scalarRe.FindString(rest); m != "" {
				val, err := parseScalar(m)
				if err != nil {
					return nil, &LexError{Area: src.AreaOf(cursor, cursor+len(m))}
				}
				tokens = append(tokens, token{kind: tokScalar, area: src.AreaOf(cursor, cursor+len(m)), num: val})
				cursor += len(m)
				continue
			}
		}

		if m := punctRe.FindString(rest); m != "" {
			tokens = append(tokens, token{kind: punctKind(m), area: src.AreaOf(cursor, cursor+len(m))})
			cursor += len(m)
			continue
		}

		if m := identRe.FindString(rest); m != "" {
			tokens = append(tokens, token{kind: tokUnit, area: src.AreaOf(cursor, cursor+len(m)), text: m})
			cursor += len(m)
			continue
		}

		return nil, &LexError{Area: src.AreaOf(cursor, cursor+1)}
	}

	return tokens, nil
}

func punctKind(s string) tokenKind {
	switch s {
	case "*":
		return tokMul
	case "/":
		return tokDiv
	case "**", "^":
		return tokExp
	case "±", "+-":
		return tokUnc
	case "-":
		return tokRng
	case "~":
		return tokVar
	case "(":
		return tokGroupOpen
	case ")":
		return tokGroupClose
	}
	panic("quantops: unreachable punctuation token " + s)
}

// parseScalar strips the internal spacing the scalar grammar tolerates
// around the decimal point, then hands the literal to decimal.Decimal for
// exact parsing before collapsing to float64 — the same two-step the
// tokenizer's number handling in the teacher package used decimal for.
func parseScalar(match string) (float64, error) {
	cleaned := strings.ReplaceAll(match, " ", "")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, err
	}
	f, _ := d.Float64()
	return f, nil
}
