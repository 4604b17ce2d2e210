package parser

import (
	"errors"
	"math/big"
	"testing"

	"symcalc/internal/symbol"
)

func TestParseTrees(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  symbol.Expr
	}{
		{
			name:  "умножение сильнее сложения",
			input: "2+3*4",
			want:  symbol.NewAdd(symbol.Int(2), symbol.NewMul(symbol.Int(3), symbol.Int(4))),
		},
		{
			name:  "скобки меняют приоритет",
			input: "(2+3)*4",
			want:  symbol.NewMul(symbol.NewAdd(symbol.Int(2), symbol.Int(3)), symbol.Int(4)),
		},
		{
			name:  "вычитание сводится к Add с отрицанием",
			input: "2-3",
			want:  symbol.NewAdd(symbol.Int(2), symbol.Int(-3)),
		},
		{
			name:  "деление сводится к Mul и Pow(-1)",
			input: "1/2",
			want:  symbol.NewMul(symbol.Int(1), symbol.NewPow(symbol.Int(2), symbol.Int(-1))),
		},
		{
			name:  "унарный минус применяется к степени целиком",
			input: "-x^2",
			want:  symbol.NewMul(symbol.Int(-1), symbol.NewPow(symbol.Sym("x"), symbol.Int(2))),
		},
		{
			name:  "степень через **",
			input: "2**3",
			want:  symbol.NewPow(symbol.Int(2), symbol.Int(3)),
		},
		{
			name:  "сложение левоассоциативно",
			input: "1-2-3",
			want: symbol.NewAdd(
				symbol.NewAdd(symbol.Int(1), symbol.Int(-2)),
				symbol.Int(-3),
			),
		},
		{
			name:  "умножение левоассоциативно",
			input: "8/4/2",
			want: symbol.NewMul(
				symbol.NewMul(symbol.Int(8), symbol.NewPow(symbol.Int(4), symbol.Int(-1))),
				symbol.NewPow(symbol.Int(2), symbol.Int(-1)),
			),
		},
		{
			name:  "дробный литерал",
			input: "2*x + 1.5",
			want: symbol.NewAdd(
				symbol.NewMul(symbol.Int(2), symbol.Sym("x")),
				symbol.Flt(1.5),
			),
		},
		{
			name:  "дробь без целой части",
			input: ".5*x",
			want:  symbol.NewMul(symbol.Flt(0.5), symbol.Sym("x")),
		},
		{
			name:  "унарный минус внутри произведения",
			input: "2*-3",
			want:  symbol.NewMul(symbol.Int(2), symbol.Int(-3)),
		},
		{
			name:  "пробелы игнорируются",
			input: " 2 + 3 ",
			want:  symbol.NewAdd(symbol.Int(2), symbol.Int(3)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAlgebraic(tt.input)
			if err != nil {
				t.Fatalf("ParseAlgebraic(%q) error = %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseAlgebraic(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseBigInteger(t *testing.T) {
	got, err := ParseAlgebraic("123456789012345678901234567890")
	if err != nil {
		t.Fatalf("ParseAlgebraic() error = %v", err)
	}

	want, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	if !got.Equal(symbol.NewInteger(want)) {
		t.Errorf("ParseAlgebraic() = %v, want %v", got, want)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "пустое выражение", input: ""},
		{name: "только пробелы", input: "   "},
		{name: "оборванное сложение", input: "2+"},
		{name: "незакрытая скобка", input: "(2+3"},
		{name: "лишняя закрывающая скобка", input: "2+3)"},
		{name: "недопустимый символ", input: "2+@"},
		{name: "две точки в числе", input: "1..2"},
		{name: "одинокая точка", input: "."},
		{name: "цепочка степеней без скобок", input: "a^b^c"},
		{name: "два атома подряд", input: "2 3"},
		{name: "оператор в начале", input: "*2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAlgebraic(tt.input)
			if err == nil {
				t.Fatalf("ParseAlgebraic(%q) должен вернуть ошибку", tt.input)
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("ParseAlgebraic(%q) error = %v, want ErrInvalid", tt.input, err)
			}
		})
	}
}

func TestSyntaxErrorCarriesText(t *testing.T) {
	_, err := ParseAlgebraic("2+@")

	var se *SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("ожидался *SyntaxError, получено %T", err)
	}
	if se.Expr != "2+@" {
		t.Errorf("SyntaxError.Expr = %q, want %q", se.Expr, "2+@")
	}
	if se.Pos != 2 {
		t.Errorf("SyntaxError.Pos = %d, want 2", se.Pos)
	}
}

func TestParseRespectsGuard(t *testing.T) {
	// Охранник размеров срабатывает до разбора
	_, err := Parse("((1))", Limits{MaxLen: 64, MaxDepth: 1})
	if !errors.Is(err, ErrTooDeep) {
		t.Errorf("Parse() error = %v, want ErrTooDeep", err)
	}
}
