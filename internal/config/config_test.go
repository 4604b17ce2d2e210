package config

import (
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.MaxExprLen != 1024 {
		t.Errorf("MaxExprLen = %d, want 1024", cfg.MaxExprLen)
	}
	if cfg.MaxExprDepth != 32 {
		t.Errorf("MaxExprDepth = %d, want 32", cfg.MaxExprDepth)
	}
	if cfg.JobQueueTimeout != 180*time.Second {
		t.Errorf("JobQueueTimeout = %v, want 180s", cfg.JobQueueTimeout)
	}
	if cfg.CalculationTimeout != 3*time.Second {
		t.Errorf("CalculationTimeout = %v, want 3s", cfg.CalculationTimeout)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("MAX_EXPR_LEN", "256")
	t.Setenv("MAX_EXPR_DEPTH", "8")
	t.Setenv("MATH_JOB_QUEUE_TIMEOUT", "30")
	t.Setenv("MATH_CALCULATION_TIMEOUT", "0.5")

	cfg := Load()

	if cfg.MaxExprLen != 256 {
		t.Errorf("MaxExprLen = %d, want 256", cfg.MaxExprLen)
	}
	if cfg.MaxExprDepth != 8 {
		t.Errorf("MaxExprDepth = %d, want 8", cfg.MaxExprDepth)
	}
	if cfg.JobQueueTimeout != 30*time.Second {
		t.Errorf("JobQueueTimeout = %v, want 30s", cfg.JobQueueTimeout)
	}
	if cfg.CalculationTimeout != 500*time.Millisecond {
		t.Errorf("CalculationTimeout = %v, want 500ms", cfg.CalculationTimeout)
	}
}

func TestLoadBadValuesFallBack(t *testing.T) {
	t.Setenv("MAX_EXPR_LEN", "not-a-number")
	t.Setenv("MATH_JOB_QUEUE_TIMEOUT", "-5")

	cfg := Load()

	if cfg.MaxExprLen != DefaultMaxExprLen {
		t.Errorf("MaxExprLen = %d, want значение по умолчанию %d", cfg.MaxExprLen, DefaultMaxExprLen)
	}
	if cfg.JobQueueTimeout != DefaultJobQueueTimeout {
		t.Errorf("JobQueueTimeout = %v, want значение по умолчанию %v", cfg.JobQueueTimeout, DefaultJobQueueTimeout)
	}
}
