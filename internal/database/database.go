package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/glebarez/go-sqlite"
	"golang.org/x/crypto/bcrypt"

	"symcalc/internal/models"
)

// Store — sqlite-хранилище пользователей и истории вычислений.
type Store struct {
	db *sql.DB
}

// Open открывает базу данных и создает таблицы при необходимости.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к базе данных: %w", err)
	}

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) createTables() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			login TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("ошибка создания таблицы users: %w", err)
	}

	_, err = s.db.Exec(`
		CREATE TABLE IF NOT EXISTS calculations (
			id TEXT PRIMARY KEY,
			user_id INTEGER NOT NULL,
			expression TEXT NOT NULL,
			status TEXT NOT NULL,
			result REAL,
			created_at TEXT NOT NULL DEFAULT (strftime('%d.%m.%Y %H:%M:%S', 'now')),
			FOREIGN KEY (user_id) REFERENCES users(id)
		)
	`)
	if err != nil {
		return fmt.Errorf("ошибка создания таблицы calculations: %w", err)
	}

	return nil
}

// CreateUser создает нового пользователя с bcrypt-хешем пароля.
func (s *Store) CreateUser(login, password string) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM users WHERE login = ?", login).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка проверки существования пользователя: %w", err)
	}
	if count > 0 {
		return 0, fmt.Errorf("пользователь с логином %s уже существует", login)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("ошибка хеширования пароля: %w", err)
	}

	result, err := s.db.Exec("INSERT INTO users (login, password) VALUES (?, ?)", login, string(hashedPassword))
	if err != nil {
		return 0, fmt.Errorf("ошибка создания пользователя: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("ошибка получения ID пользователя: %w", err)
	}
	return int(id), nil
}

// GetUser возвращает пользователя по логину, nil если не найден.
func (s *Store) GetUser(login string) (*models.User, error) {
	var user models.User
	err := s.db.QueryRow("SELECT id, login, password FROM users WHERE login = ?", login).
		Scan(&user.ID, &user.Login, &user.Password)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
	}
	return &user, nil
}

// SaveCalculation сохраняет завершенное вычисление в истории.
func (s *Store) SaveCalculation(c *models.Calculation, userID int) error {
	if c.CreatedAt == "" {
		c.CreatedAt = time.Now().Format("02.01.2006 15:04:05")
	}

	_, err := s.db.Exec(
		"INSERT INTO calculations (id, user_id, expression, status, result, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		c.ID, userID, c.Expression, c.Status, c.Result, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("ошибка сохранения вычисления: %w", err)
	}
	return nil
}

// GetCalculations возвращает историю вычислений пользователя.
func (s *Store) GetCalculations(userID int) ([]models.Calculation, error) {
	rows, err := s.db.Query(
		"SELECT id, expression, status, result, created_at FROM calculations WHERE user_id = ? ORDER BY created_at DESC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения истории: %w", err)
	}
	defer rows.Close()

	var calculations []models.Calculation
	for rows.Next() {
		var c models.Calculation
		if err := rows.Scan(&c.ID, &c.Expression, &c.Status, &c.Result, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка чтения данных вычисления: %w", err)
		}
		calculations = append(calculations, c)
	}
	return calculations, rows.Err()
}

// CheckPasswordHash сравнивает пароль и хеш пароля.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
