package symbol

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
)

// Expr — узел символьного дерева выражения.
// Закрытый набор вариантов: Symbol, Integer, Float, Add, Mul, Pow.
// Отрицание и деление отдельными узлами не представляются:
// -x == Mul(-1, x), a/b == Mul(a, Pow(b, -1)).
type Expr interface {
	String() string
	Equal(other Expr) bool
	Eval(vars map[string]float64) (float64, error)
}

type Symbol struct {
	Name string
}

type Integer struct {
	Value *big.Int
}

type Float struct {
	Value float64
}

type Add struct {
	Left, Right Expr
}

type Mul struct {
	Left, Right Expr
}

type Pow struct {
	Base, Exponent Expr
}

func Sym(name string) *Symbol { return &Symbol{Name: name} }

func Int(v int64) *Integer { return &Integer{Value: big.NewInt(v)} }

func NewInteger(v *big.Int) *Integer { return &Integer{Value: v} }

func Flt(v float64) *Float { return &Float{Value: v} }

func NewAdd(l, r Expr) *Add { return &Add{Left: l, Right: r} }

func NewMul(l, r Expr) *Mul { return &Mul{Left: l, Right: r} }

func NewPow(base, exp Expr) *Pow { return &Pow{Base: base, Exponent: exp} }

// Sub строит a-b как Add(a, -b).
func Sub(a, b Expr) *Add { return &Add{Left: a, Right: Negate(b)} }

// Div строит a/b как Mul(a, Pow(b, -1)).
func Div(a, b Expr) *Mul { return &Mul{Left: a, Right: &Pow{Base: b, Exponent: Int(-1)}} }

// Negate выполняет арифметическое отрицание: у литералов знак
// меняется на месте, остальное заворачивается в Mul(-1, x).
func Negate(x Expr) Expr {
	switch v := x.(type) {
	case *Integer:
		return &Integer{Value: new(big.Int).Neg(v.Value)}
	case *Float:
		return &Float{Value: -v.Value}
	default:
		return &Mul{Left: Int(-1), Right: x}
	}
}

func (s *Symbol) String() string { return s.Name }

func (i *Integer) String() string { return i.Value.String() }

func (f *Float) String() string { return strconv.FormatFloat(f.Value, 'g', -1, 64) }

func (a *Add) String() string {
	return a.Left.String() + " + " + a.Right.String()
}

func (m *Mul) String() string {
	return parenAdd(m.Left) + "*" + parenAdd(m.Right)
}

func (p *Pow) String() string {
	return parenNonAtom(p.Base) + "^" + parenNonAtom(p.Exponent)
}

// parenAdd заключает слагаемые в скобки внутри произведения.
func parenAdd(e Expr) string {
	if _, ok := e.(*Add); ok {
		return "(" + e.String() + ")"
	}
	return e.String()
}

func parenNonAtom(e Expr) string {
	switch e.(type) {
	case *Symbol, *Integer, *Float:
		return e.String()
	default:
		return "(" + e.String() + ")"
	}
}

func (s *Symbol) Equal(other Expr) bool {
	o, ok := other.(*Symbol)
	return ok && s.Name == o.Name
}

func (i *Integer) Equal(other Expr) bool {
	o, ok := other.(*Integer)
	return ok && i.Value.Cmp(o.Value) == 0
}

func (f *Float) Equal(other Expr) bool {
	o, ok := other.(*Float)
	return ok && f.Value == o.Value
}

func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	return ok && a.Left.Equal(o.Left) && a.Right.Equal(o.Right)
}

func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	return ok && m.Left.Equal(o.Left) && m.Right.Equal(o.Right)
}

func (p *Pow) Equal(other Expr) bool {
	o, ok := other.(*Pow)
	return ok && p.Base.Equal(o.Base) && p.Exponent.Equal(o.Exponent)
}

func (s *Symbol) Eval(vars map[string]float64) (float64, error) {
	v, ok := vars[s.Name]
	if !ok {
		return 0, fmt.Errorf("unbound variable: %s", s.Name)
	}
	return v, nil
}

func (i *Integer) Eval(map[string]float64) (float64, error) {
	v, _ := new(big.Float).SetInt(i.Value).Float64()
	return v, nil
}

func (f *Float) Eval(map[string]float64) (float64, error) {
	return f.Value, nil
}

func (a *Add) Eval(vars map[string]float64) (float64, error) {
	l, err := a.Left.Eval(vars)
	if err != nil {
		return 0, err
	}
	r, err := a.Right.Eval(vars)
	if err != nil {
		return 0, err
	}
	return l + r, nil
}

func (m *Mul) Eval(vars map[string]float64) (float64, error) {
	l, err := m.Left.Eval(vars)
	if err != nil {
		return 0, err
	}
	r, err := m.Right.Eval(vars)
	if err != nil {
		return 0, err
	}
	return l * r, nil
}

func (p *Pow) Eval(vars map[string]float64) (float64, error) {
	base, err := p.Base.Eval(vars)
	if err != nil {
		return 0, err
	}
	exp, err := p.Exponent.Eval(vars)
	if err != nil {
		return 0, err
	}
	if base == 0 && exp < 0 {
		return 0, fmt.Errorf("division by zero")
	}
	return math.Pow(base, exp), nil
}
