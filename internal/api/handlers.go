package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"symcalc/internal/auth"
	"symcalc/internal/database"
	"symcalc/internal/dispatch"
	"symcalc/internal/models"
	"symcalc/internal/parser"
)

func sendJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func sendJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// RegisterHandler создает нового пользователя.
func (s *Server) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req models.AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Login == "" || req.Password == "" {
		sendJSONError(w, http.StatusBadRequest, "login and password are required")
		return
	}

	id, err := s.store.CreateUser(req.Login, req.Password)
	if err != nil {
		sendJSONError(w, http.StatusConflict, err.Error())
		return
	}

	log.Printf("Зарегистрирован пользователь %s (id=%d)", req.Login, id)
	w.WriteHeader(http.StatusCreated)
}

// LoginHandler проверяет пароль и выдает JWT токен.
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req models.AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.store.GetUser(req.Login)
	if err != nil {
		sendJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if user == nil || !database.CheckPasswordHash(req.Password, user.Password) {
		sendJSONError(w, http.StatusUnauthorized, "invalid login or password")
		return
	}

	token, err := auth.GenerateToken(user.ID, user.Login)
	if err != nil {
		sendJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	sendJSON(w, http.StatusOK, models.AuthResponse{Token: token})
}

// TokenInfoHandler возвращает время жизни токена в минутах.
func (s *Server) TokenInfoHandler(w http.ResponseWriter, r *http.Request) {
	sendJSON(w, http.StatusOK, map[string]string{
		"expirationMinutes": strconv.Itoa(auth.TokenExpirationMinutes),
	})
}

// ParseHandler проверяет размеры выражения, разбирает его и
// возвращает каноническую запись построенного дерева.
func (s *Server) ParseHandler(w http.ResponseWriter, r *http.Request) {
	var req models.ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	text := strings.TrimSpace(req.Expression)
	expr, err := parser.Parse(text, parser.LimitsFromConfig(s.cfg))
	if err != nil {
		switch {
		case errors.Is(err, parser.ErrTooLong), errors.Is(err, parser.ErrTooDeep):
			sendJSONError(w, http.StatusRequestEntityTooLarge, err.Error())
		default:
			sendJSONError(w, http.StatusUnprocessableEntity, err.Error())
		}
		return
	}

	sendJSON(w, http.StatusOK, models.ParseResponse{Tree: expr.String()})
}

// CalculateHandler синхронно вычисляет выражение через диспетчер:
// задание уходит изолированному воркеру, ответ приходит после опроса.
func (s *Server) CalculateHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req models.CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendJSONError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	text := strings.TrimSpace(req.Expression)

	payload := map[string]any{"expression": text}
	if len(req.Vars) > 0 {
		vars := make(map[string]any, len(req.Vars))
		for name, v := range req.Vars {
			vars[name] = v
		}
		payload["vars"] = vars
	}

	value, err := s.dispatcher.Calculate(r.Context(), "evaluate", payload)

	calc := models.Calculation{
		ID:         uuid.New().String(),
		Expression: text,
		Status:     "COMPLETED",
	}

	if err != nil {
		calc.Status = "FAILED"
		if saveErr := s.store.SaveCalculation(&calc, userID); saveErr != nil {
			log.Printf("Ошибка сохранения вычисления: %v", saveErr)
		}
		switch {
		case errors.Is(err, dispatch.ErrTimeoutExpired):
			sendJSONError(w, http.StatusGatewayTimeout, err.Error())
		case errors.Is(err, dispatch.ErrCalculationFailed):
			sendJSONError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			sendJSONError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	if f, ok := value.(float64); ok {
		calc.Result = f
	}
	if saveErr := s.store.SaveCalculation(&calc, userID); saveErr != nil {
		log.Printf("Ошибка сохранения вычисления: %v", saveErr)
	}

	sendJSON(w, http.StatusOK, models.CalculateResponse{Result: value})
}

// HistoryHandler возвращает историю вычислений пользователя.
func (s *Server) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		sendJSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	calculations, err := s.store.GetCalculations(userID)
	if err != nil {
		sendJSONError(w, http.StatusInternalServerError, "internal error")
		return
	}

	sendJSON(w, http.StatusOK, models.HistoryResponse{Calculations: calculations})
}
