package compute

import (
	"context"
	"fmt"
	"sync"
	"time"

	"symcalc/internal/config"
	"symcalc/internal/parser"
)

// Func — именованное вычисление. Задания пересекают границу процесса,
// поэтому вычисление задается именем из реестра и сериализуемым
// payload, а не замыканием.
type Func func(ctx context.Context, payload map[string]any) (any, error)

type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Func
}

func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]Func)}
}

func (r *Registry) Register(name string, fn Func) {
	r.mu.Lock()
	r.funcs[name] = fn
	r.mu.Unlock()
}

func (r *Registry) Lookup(name string) (Func, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.funcs[name]
	return fn, ok
}

// Builtin возвращает реестр со встроенными вычислениями:
// evaluate — разбор и численное вычисление алгебраического выражения,
// arith — бинарная операция над двумя числами.
func Builtin(cfg *config.Config) *Registry {
	r := NewRegistry()
	limits := parser.DefaultLimits()
	if cfg != nil {
		limits = parser.LimitsFromConfig(cfg)
	}

	r.Register("evaluate", func(ctx context.Context, payload map[string]any) (any, error) {
		text, ok := payload["expression"].(string)
		if !ok {
			return nil, fmt.Errorf("evaluate: missing expression")
		}
		vars := floatVars(payload["vars"])

		expr, err := parser.Parse(text, limits)
		if err != nil {
			return nil, err
		}
		return expr.Eval(vars)
	})

	r.Register("arith", func(ctx context.Context, payload map[string]any) (any, error) {
		op, _ := payload["op"].(string)
		arg1, ok1 := toFloat(payload["arg1"])
		arg2, ok2 := toFloat(payload["arg2"])
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("arith: missing arguments")
		}

		switch op {
		case "+":
			return arg1 + arg2, nil
		case "-":
			return arg1 - arg2, nil
		case "*":
			return arg1 * arg2, nil
		case "/":
			if arg2 == 0 {
				return nil, fmt.Errorf("division by zero")
			}
			return arg1 / arg2, nil
		default:
			return nil, fmt.Errorf("arith: unknown operation %q", op)
		}
	})

	return r
}

// RunWithTimeout исполняет вычисление под таймаутом задания.
// Истекший таймаут возвращает context.DeadlineExceeded; вызывающий
// классифицирует его как остановку воркером.
func RunWithTimeout(ctx context.Context, fn Func, payload map[string]any, timeout time.Duration) (any, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type result struct {
		value any
		err   error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := fn(ctx, payload)
		ch <- result{value: v, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		return r.value, r.err
	}
}

// toFloat приводит значение из JSON payload к float64.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func floatVars(v any) map[string]float64 {
	switch raw := v.(type) {
	case map[string]float64:
		return raw
	case map[string]any:
		vars := make(map[string]float64, len(raw))
		for name, val := range raw {
			if f, ok := toFloat(val); ok {
				vars[name] = f
			}
		}
		return vars
	default:
		return nil
	}
}
