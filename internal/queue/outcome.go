package queue

// Outcome различает "результата еще нет" и "вычисление завершилось".
// Завершенное задание может законно вернуть nil; опрашивающий цикл
// никогда не спутает это с ожиданием.
type Outcome struct {
	done  bool
	value any
}

// Pending — результата еще нет.
func Pending() Outcome { return Outcome{} }

// Done — вычисление завершено со значением v (допустим nil).
func Done(v any) Outcome { return Outcome{done: true, value: v} }

func (o Outcome) IsDone() bool { return o.done }

func (o Outcome) Value() any { return o.value }
