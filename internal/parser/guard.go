package parser

import (
	"fmt"

	"symcalc/internal/config"
)

// Limits ограничивают размеры входного текста выражения.
// Нулевые поля заменяются значениями по умолчанию.
type Limits struct {
	MaxLen   int
	MaxDepth int
}

func DefaultLimits() Limits {
	return Limits{MaxLen: config.DefaultMaxExprLen, MaxDepth: config.DefaultMaxExprDepth}
}

// LimitsFromConfig берет лимиты из конфигурации процесса.
func LimitsFromConfig(cfg *config.Config) Limits {
	return Limits{MaxLen: cfg.MaxExprLen, MaxDepth: cfg.MaxExprDepth}
}

// CheckDims проверяет длину текста и глубину вложенности скобок
// за один проход слева направо. Выполняется строго до разбора:
// грамматика реализована рекурсивным спуском, и неограниченная
// вложенность грозила бы переполнением стека.
func CheckDims(text string, limits Limits) error {
	if limits.MaxLen <= 0 {
		limits.MaxLen = config.DefaultMaxExprLen
	}
	if limits.MaxDepth <= 0 {
		limits.MaxDepth = config.DefaultMaxExprDepth
	}

	if len(text) > limits.MaxLen {
		return fmt.Errorf("%w: %d > %d", ErrTooLong, len(text), limits.MaxLen)
	}

	depth := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '(':
			depth++
			if depth > limits.MaxDepth {
				return fmt.Errorf("%w: %d > %d", ErrTooDeep, depth, limits.MaxDepth)
			}
		case ')':
			// Лишние закрывающие скобки счетчик не опускают ниже нуля,
			// ими займется сама грамматика.
			if depth > 0 {
				depth--
			}
		}
	}

	return nil
}
