package symbol

import (
	"math/big"
	"testing"
)

func TestNegate(t *testing.T) {
	tests := []struct {
		name string
		in   Expr
		want Expr
	}{
		{
			name: "целый литерал меняет знак на месте",
			in:   Int(3),
			want: Int(-3),
		},
		{
			name: "дробный литерал меняет знак на месте",
			in:   Flt(2.5),
			want: Flt(-2.5),
		},
		{
			name: "символ заворачивается в Mul(-1, x)",
			in:   Sym("x"),
			want: NewMul(Int(-1), Sym("x")),
		},
		{
			name: "степень заворачивается целиком",
			in:   NewPow(Sym("x"), Int(2)),
			want: NewMul(Int(-1), NewPow(Sym("x"), Int(2))),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Negate(tt.in)
			if !got.Equal(tt.want) {
				t.Errorf("Negate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSubDiv(t *testing.T) {
	// a-b == Add(a, -b)
	if got, want := Sub(Int(2), Int(3)), NewAdd(Int(2), Int(-3)); !got.Equal(want) {
		t.Errorf("Sub() = %v, want %v", got, want)
	}
	// a/b == Mul(a, Pow(b, -1))
	if got, want := Div(Int(1), Int(2)), NewMul(Int(1), NewPow(Int(2), Int(-1))); !got.Equal(want) {
		t.Errorf("Div() = %v, want %v", got, want)
	}
}

func TestEval(t *testing.T) {
	tests := []struct {
		name    string
		expr    Expr
		vars    map[string]float64
		want    float64
		wantErr bool
	}{
		{
			name: "сложение и умножение",
			expr: NewAdd(Int(2), NewMul(Int(3), Int(4))),
			want: 14,
		},
		{
			name: "степень",
			expr: NewPow(Int(2), Int(10)),
			want: 1024,
		},
		{
			name: "деление через Pow(-1)",
			expr: NewMul(Int(1), NewPow(Int(2), Int(-1))),
			want: 0.5,
		},
		{
			name: "подстановка переменной",
			expr: NewMul(Sym("x"), Sym("x")),
			vars: map[string]float64{"x": 3},
			want: 9,
		},
		{
			name:    "несвязанная переменная",
			expr:    Sym("y"),
			wantErr: true,
		},
		{
			name:    "деление на ноль",
			expr:    NewPow(Int(0), Int(-1)),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.expr.Eval(tt.vars)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Eval() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Eval() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBigInteger(t *testing.T) {
	big1, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	big2, _ := new(big.Int).SetString("123456789012345678901234567890", 10)

	if !NewInteger(big1).Equal(NewInteger(big2)) {
		t.Error("равные большие целые должны сравниваться как равные")
	}
	if NewInteger(big1).String() != "123456789012345678901234567890" {
		t.Errorf("String() = %v", NewInteger(big1).String())
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		name string
		expr Expr
		want string
	}{
		{
			name: "сумма без скобок",
			expr: NewAdd(Int(2), NewMul(Int(3), Int(4))),
			want: "2 + 3*4",
		},
		{
			name: "слагаемые в произведении скобкуются",
			expr: NewMul(NewAdd(Int(2), Int(3)), Int(4)),
			want: "(2 + 3)*4",
		},
		{
			name: "степень с атомами",
			expr: NewPow(Sym("x"), Int(2)),
			want: "x^2",
		},
		{
			name: "неатомарное основание степени скобкуется",
			expr: NewPow(NewAdd(Sym("x"), Int(1)), Int(2)),
			want: "(x + 1)^2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.expr.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
