package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Значения по умолчанию. Используются, когда переменная окружения
// не задана и вызывающая сторона не передала явного значения.
const (
	DefaultMaxExprLen         = 1024
	DefaultMaxExprDepth       = 32
	DefaultJobQueueTimeout    = 180 * time.Second
	DefaultCalculationTimeout = 3 * time.Second
)

// Config — неизменяемая конфигурация процесса. Собирается один раз
// при старте; цепочка подстановки: явный аргумент -> Config -> константа.
type Config struct {
	MaxExprLen   int
	MaxExprDepth int

	JobQueueTimeout    time.Duration
	CalculationTimeout time.Duration

	HTTPPort  string
	GRPCPort  string
	AgentPort string

	ComputingPower int
	DatabasePath   string
	JWTSecret      string
}

// Load загружает конфигурацию из .env файла и переменных окружения.
func Load() *Config {
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err == nil {
			break
		}
	}

	return &Config{
		MaxExprLen:         getEnvOrDefaultInt("MAX_EXPR_LEN", DefaultMaxExprLen),
		MaxExprDepth:       getEnvOrDefaultInt("MAX_EXPR_DEPTH", DefaultMaxExprDepth),
		JobQueueTimeout:    getEnvOrDefaultSeconds("MATH_JOB_QUEUE_TIMEOUT", DefaultJobQueueTimeout),
		CalculationTimeout: getEnvOrDefaultSeconds("MATH_CALCULATION_TIMEOUT", DefaultCalculationTimeout),
		HTTPPort:           getEnvOrDefault("ORCHESTRATOR_HTTP_PORT", "8080"),
		GRPCPort:           getEnvOrDefault("ORCHESTRATOR_GRPC_PORT", "8081"),
		AgentPort:          getEnvOrDefault("AGENT_HTTP_PORT", "8082"),
		ComputingPower:     getEnvOrDefaultInt("COMPUTING_POWER", 4),
		DatabasePath:       getEnvOrDefault("DATABASE_PATH", "./symcalc.db"),
		JWTSecret:          getEnvOrDefault("JWT_SECRET", "default-jwt-secret-for-symcalc"),
	}
}

// Default возвращает конфигурацию из одних значений по умолчанию,
// не читая окружение. Удобно для тестов и встраивания.
func Default() *Config {
	return &Config{
		MaxExprLen:         DefaultMaxExprLen,
		MaxExprDepth:       DefaultMaxExprDepth,
		JobQueueTimeout:    DefaultJobQueueTimeout,
		CalculationTimeout: DefaultCalculationTimeout,
		HTTPPort:           "8080",
		GRPCPort:           "8081",
		AgentPort:          "8082",
		ComputingPower:     4,
		DatabasePath:       "./symcalc.db",
		JWTSecret:          "default-jwt-secret-for-symcalc",
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		log.Printf("Ошибка при преобразовании значения переменной %s, используется значение по умолчанию", key)
	}
	return defaultValue
}

// getEnvOrDefaultSeconds читает длительность, заданную числом секунд.
func getEnvOrDefaultSeconds(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if secs, err := strconv.ParseFloat(value, 64); err == nil && secs > 0 {
			return time.Duration(secs * float64(time.Second))
		}
		log.Printf("Ошибка при преобразовании значения переменной %s, используется значение по умолчанию", key)
	}
	return defaultValue
}
