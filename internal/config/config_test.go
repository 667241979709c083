package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_PATH", "")
	t.Setenv("RATES_BASE_URL", "")
	t.Setenv("PAYMENT_SECRET", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 5001 {
		t.Errorf("Port = %d, want 5001", cfg.Port)
	}
	if cfg.DBPath != "./data/splitpal.db" {
		t.Errorf("DBPath = %q, want default", cfg.DBPath)
	}
	if cfg.PaymentSecret == "" {
		t.Error("PaymentSecret should have a default")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DB_PATH", "/tmp/test.db")
	t.Setenv("RATES_BASE_URL", "http://localhost:9000/rates/")
	t.Setenv("PAYMENT_SECRET", "override")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.DBPath != "/tmp/test.db" {
		t.Errorf("DBPath = %q, want /tmp/test.db", cfg.DBPath)
	}
	if cfg.RatesBaseURL != "http://localhost:9000/rates/" {
		t.Errorf("RatesBaseURL = %q", cfg.RatesBaseURL)
	}
	if cfg.PaymentSecret != "override" {
		t.Errorf("PaymentSecret = %q, want override", cfg.PaymentSecret)
	}
}

func TestLoadInvalidPort(t *testing.T) {
	for _, raw := range []string{"abc", "-1", "0"} {
		t.Setenv("PORT", raw)
		if _, err := Load(); err == nil {
			t.Errorf("PORT=%q: expected an error", raw)
		}
	}
}
