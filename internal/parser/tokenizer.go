package parser

type tokenType int

const (
	tokInt tokenType = iota
	tokFloat
	tokIdent
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	typ tokenType
	val string
	pos int
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isLetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

// Разбивает выражение на токены: идентификаторы, целые и дробные
// литералы, операторы + - * / ^ ** и скобки.
func tokenize(expr string) ([]token, error) {
	var tokens []token

	for i := 0; i < len(expr); i++ {
		c := expr[i]

		switch {
		case c == ' ' || c == '\t':
			// пропускаем
		case c == '(':
			tokens = append(tokens, token{typ: tokLParen, val: "(", pos: i})
		case c == ')':
			tokens = append(tokens, token{typ: tokRParen, val: ")", pos: i})
		case c == '+' || c == '-' || c == '/' || c == '^':
			tokens = append(tokens, token{typ: tokOp, val: string(c), pos: i})
		case c == '*':
			if i+1 < len(expr) && expr[i+1] == '*' {
				tokens = append(tokens, token{typ: tokOp, val: "**", pos: i})
				i++
			} else {
				tokens = append(tokens, token{typ: tokOp, val: "*", pos: i})
			}
		case isDigit(c) || c == '.':
			j := i
			sawDot := false
			sawDigit := false
			for j < len(expr) {
				switch {
				case isDigit(expr[j]):
					sawDigit = true
					j++
					continue
				case expr[j] == '.':
					if sawDot {
						return nil, &SyntaxError{Expr: expr, Pos: j, Detail: "unexpected '.' in number"}
					}
					sawDot = true
					j++
					continue
				}
				break
			}
			if !sawDigit {
				return nil, &SyntaxError{Expr: expr, Pos: i, Detail: "unexpected character '.'"}
			}
			typ := tokInt
			if sawDot {
				typ = tokFloat
			}
			tokens = append(tokens, token{typ: typ, val: expr[i:j], pos: i})
			i = j - 1
		case isLetter(c):
			j := i
			for j < len(expr) && (isLetter(expr[j]) || isDigit(expr[j])) {
				j++
			}
			tokens = append(tokens, token{typ: tokIdent, val: expr[i:j], pos: i})
			i = j - 1
		default:
			return nil, &SyntaxError{Expr: expr, Pos: i, Detail: "unexpected character '" + string(c) + "'"}
		}
	}

	return tokens, nil
}
