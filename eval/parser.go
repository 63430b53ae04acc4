package eval

import (
	"fmt"
	"strconv"
	"unicode"
)

// tokenKind enumerates the complete lexical vocabulary. Anything the
// lexer cannot map to one of these is an unsupported construct.
type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenNumber
	tokenOperator
	tokenLeftParen
	tokenRightParen
)

type token struct {
	kind  tokenKind
	pos   int
	op    rune
	value float64
}

// parser is a recursive-descent parser over the restricted grammar:
//
//	expression = term   { ("+" | "-") term }
//	term       = power  { ("*" | "/") power }
//	power      = primary [ "^" power ]          (right-associative)
//	primary    = number | "(" expression ")"
//
// Note the absence of a unary production: "-3" is rejected, matching
// the reject-by-default posture of the node allow-list.
type parser struct {
	input  string
	pos    int
	tokens []token
	cursor int
}

func (p *parser) parse() (expr, error) {
	if err := p.lex(); err != nil {
		return nil, err
	}

	root, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if tok := p.peek(); tok.kind != tokenEOF {
		return nil, p.errParse(tok.pos, "unexpected trailing input")
	}
	return root, nil
}

// lex tokenizes the whole input up front. Token-level rejection happens
// here so the parser proper only ever sees the allowed vocabulary.
func (p *parser) lex() error {
	for p.pos < len(p.input) {
		c := rune(p.input[p.pos])

		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			p.pos++

		case c >= '0' && c <= '9' || c == '.':
			start := p.pos
			for p.pos < len(p.input) && (p.input[p.pos] >= '0' && p.input[p.pos] <= '9' || p.input[p.pos] == '.') {
				p.pos++
			}
			value, err := strconv.ParseFloat(p.input[start:p.pos], 64)
			if err != nil {
				return p.errParse(start, fmt.Sprintf("invalid number %q", p.input[start:p.pos]))
			}
			p.tokens = append(p.tokens, token{kind: tokenNumber, pos: start, value: value})

		case c == '+' || c == '-' || c == '*' || c == '/' || c == '^':
			p.tokens = append(p.tokens, token{kind: tokenOperator, pos: p.pos, op: c})
			p.pos++

		case c == '(':
			p.tokens = append(p.tokens, token{kind: tokenLeftParen, pos: p.pos})
			p.pos++

		case c == ')':
			p.tokens = append(p.tokens, token{kind: tokenRightParen, pos: p.pos})
			p.pos++

		case unicode.IsLetter(c) || c == '_':
			return p.errUnsupported(p.pos, "identifiers and function calls are not allowed")

		default:
			return p.errUnsupported(p.pos, fmt.Sprintf("character %q is not allowed", c))
		}
	}

	p.tokens = append(p.tokens, token{kind: tokenEOF, pos: len(p.input)})
	return nil
}

func (p *parser) peek() token {
	return p.tokens[p.cursor]
}

func (p *parser) next() token {
	tok := p.tokens[p.cursor]
	if tok.kind != tokenEOF {
		p.cursor++
	}
	return tok
}

func (p *parser) parseExpression() (expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.peek()
		if tok.kind != tokenOperator || (tok.op != '+' && tok.op != '-') {
			return left, nil
		}
		p.next()

		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = binary{op: tok.op, left: left, right: right}
	}
}

func (p *parser) parseTerm() (expr, error) {
	left, err := p.parsePower()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.peek()
		if tok.kind != tokenOperator || (tok.op != '*' && tok.op != '/') {
			return left, nil
		}
		p.next()

		right, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		left = binary{op: tok.op, left: left, right: right}
	}
}

func (p *parser) parsePower() (expr, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	tok := p.peek()
	if tok.kind != tokenOperator || tok.op != '^' {
		return base, nil
	}
	p.next()

	// Right-associative: 2^3^2 parses as 2^(3^2).
	exponent, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	return binary{op: '^', left: base, right: exponent}, nil
}

func (p *parser) parsePrimary() (expr, error) {
	tok := p.next()

	switch tok.kind {
	case tokenNumber:
		return literal{value: tok.value}, nil

	case tokenLeftParen:
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokenRightParen {
			return nil, p.errParse(closing.pos, "missing closing parenthesis")
		}
		return inner, nil

	case tokenOperator:
		// No unary production exists: a leading "-" or "+" is an
		// operator with no left operand, which the grammar rejects.
		return nil, p.errUnsupported(tok.pos, fmt.Sprintf("operator %q has no left operand", tok.op))

	case tokenEOF:
		return nil, p.errParse(tok.pos, "unexpected end of expression")
	}

	return nil, p.errParse(tok.pos, "unexpected token")
}

func (p *parser) errParse(pos int, detail string) error {
	return &SyntaxError{Pos: pos, Detail: detail, err: ErrParse}
}

func (p *parser) errUnsupported(pos int, detail string) error {
	return &SyntaxError{Pos: pos, Detail: detail, err: ErrUnsupportedConstruct}
}
