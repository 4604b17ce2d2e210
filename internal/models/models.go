package models

// Calculation — запись истории вычислений.
type Calculation struct {
	ID         string  `json:"id"`
	Expression string  `json:"expression"`
	Status     string  `json:"status"`
	Result     float64 `json:"result"`
	CreatedAt  string  `json:"created_at"`
}

// User представляет модель пользователя в системе.
type User struct {
	ID       int    `json:"id"`
	Login    string `json:"login"`
	Password string `json:"-"` // Не сериализуем пароль в JSON
}

type AuthRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string `json:"token"`
}

type ParseRequest struct {
	Expression string `json:"expression"`
}

type ParseResponse struct {
	Tree string `json:"tree"`
}

type CalculateRequest struct {
	Expression string             `json:"expression"`
	Vars       map[string]float64 `json:"vars,omitempty"`
}

type CalculateResponse struct {
	Result any `json:"result"`
}

type HistoryResponse struct {
	Calculations []Calculation `json:"calculations"`
}
