package config

import (
	"testing"
	"time"
)

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error when JWT_SECRET is unset")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Database.Host != "localhost" {
		t.Errorf("expected default DB host localhost, got %s", cfg.Database.Host)
	}
	if cfg.Scoring.FlatScore != 50 {
		t.Errorf("expected default flat score 50, got %v", cfg.Scoring.FlatScore)
	}
	if cfg.Scoring.PenaltyTolerance != 0.20 {
		t.Errorf("expected default penalty tolerance 0.20, got %v", cfg.Scoring.PenaltyTolerance)
	}
	if cfg.Scoring.SweepInterval != 6*time.Hour {
		t.Errorf("expected default sweep interval 6h, got %v", cfg.Scoring.SweepInterval)
	}
}

func TestScoringOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SCORING_FLAT_SCORE", "40")
	t.Setenv("SCORING_SWEEP_INTERVAL", "1h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Scoring.FlatScore != 40 {
		t.Errorf("expected flat score override 40, got %v", cfg.Scoring.FlatScore)
	}
	if cfg.Scoring.SweepInterval != time.Hour {
		t.Errorf("expected sweep interval override 1h, got %v", cfg.Scoring.SweepInterval)
	}
}
