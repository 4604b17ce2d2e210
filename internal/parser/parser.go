package parser

import (
	"math/big"
	"strconv"

	"symcalc/internal/symbol"
)

// Грамматика (приоритет сверху вниз, + - * / левоассоциативны):
//
//	expr   := term (('+'|'-') term)*
//	term   := unary (('*'|'/') unary)*
//	unary  := '-' unary | power
//	power  := atom (('^'|'**') atom)?
//	atom   := INT | FLOAT | IDENT | '(' expr ')'
//
// Степень — бинарный инфикс строго между двумя атомами: a^b^c не
// разбирается, цепочки степеней требуют скобок. Вычитание и деление
// сводятся к Add/Mul при построении дерева.

// ParseAlgebraic разбирает выражение с лимитами по умолчанию.
func ParseAlgebraic(text string) (symbol.Expr, error) {
	return Parse(text, DefaultLimits())
}

// Parse проверяет размеры входа и строит символьное дерево выражения.
func Parse(text string, limits Limits) (symbol.Expr, error) {
	if err := CheckDims(text, limits); err != nil {
		return nil, err
	}

	tokens, err := tokenize(text)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, &SyntaxError{Expr: text, Pos: 0, Detail: "empty expression"}
	}

	p := &parser{expr: text, tokens: tokens}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.tokens) {
		t := p.tokens[p.pos]
		return nil, p.errorAt(t.pos, "unexpected token '"+t.val+"'")
	}

	return e, nil
}

type parser struct {
	expr   string
	tokens []token
	pos    int
}

func (p *parser) errorAt(pos int, detail string) error {
	return &SyntaxError{Expr: p.expr, Pos: pos, Detail: detail}
}

func (p *parser) peekOp(ops ...string) bool {
	if p.pos >= len(p.tokens) || p.tokens[p.pos].typ != tokOp {
		return false
	}
	for _, op := range ops {
		if p.tokens[p.pos].val == op {
			return true
		}
	}
	return false
}

func (p *parser) next() token {
	t := p.tokens[p.pos]
	p.pos++
	return t
}

func (p *parser) parseExpr() (symbol.Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for p.peekOp("+", "-") {
		op := p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if op.val == "-" {
			left = symbol.Sub(left, right)
		} else {
			left = symbol.NewAdd(left, right)
		}
	}

	return left, nil
}

func (p *parser) parseTerm() (symbol.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for p.peekOp("*", "/") {
		op := p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if op.val == "/" {
			left = symbol.Div(left, right)
		} else {
			left = symbol.NewMul(left, right)
		}
	}

	return left, nil
}

func (p *parser) parseUnary() (symbol.Expr, error) {
	if p.peekOp("-") {
		p.next()
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return symbol.Negate(e), nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (symbol.Expr, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}

	if p.peekOp("^", "**") {
		p.next()
		exp, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		return symbol.NewPow(base, exp), nil
	}

	return base, nil
}

func (p *parser) parseAtom() (symbol.Expr, error) {
	if p.pos >= len(p.tokens) {
		return nil, p.errorAt(len(p.expr), "unexpected end of expression")
	}

	t := p.next()
	switch t.typ {
	case tokInt:
		v, ok := new(big.Int).SetString(t.val, 10)
		if !ok {
			return nil, p.errorAt(t.pos, "invalid integer literal '"+t.val+"'")
		}
		return symbol.NewInteger(v), nil
	case tokFloat:
		v, err := strconv.ParseFloat(t.val, 64)
		if err != nil {
			return nil, p.errorAt(t.pos, "invalid float literal '"+t.val+"'")
		}
		return symbol.Flt(v), nil
	case tokIdent:
		return symbol.Sym(t.val), nil
	case tokLParen:
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.pos >= len(p.tokens) || p.tokens[p.pos].typ != tokRParen {
			return nil, p.errorAt(t.pos, "mismatched parentheses")
		}
		p.next()
		return e, nil
	default:
		return nil, p.errorAt(t.pos, "unexpected token '"+t.val+"'")
	}
}
