package parser

import (
	"errors"
	"fmt"
)

var (
	// ErrTooLong возвращается охранником размеров до разбора.
	ErrTooLong = errors.New("expression too long")
	// ErrTooDeep возвращается при превышении глубины вложенности скобок.
	ErrTooDeep = errors.New("expression nesting too deep")
	// ErrInvalid — выражение отвергнуто грамматикой.
	ErrInvalid = errors.New("invalid expression")
)

// SyntaxError несет исходный текст и диагностику разбора.
type SyntaxError struct {
	Expr   string
	Pos    int
	Detail string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid expression %q at position %d: %s", e.Expr, e.Pos, e.Detail)
}

func (e *SyntaxError) Unwrap() error { return ErrInvalid }
