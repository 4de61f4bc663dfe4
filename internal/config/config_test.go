package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "GRPC_ADDR", "GRPC_HOST", "GRPC_PORT", "HTTP_ADDR"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.HTTPAddr != ":5000" {
		t.Fatalf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.GRPCAddr != "0.0.0.0:50051" {
		t.Fatalf("GRPCAddr = %q", cfg.GRPCAddr)
	}
	if cfg.DatabaseDriver != DriverPostgres {
		t.Fatalf("DatabaseDriver = %q", cfg.DatabaseDriver)
	}
	if cfg.ClinicOpen != 9*time.Hour || cfg.ClinicClose != 17*time.Hour || cfg.SlotDuration != 30*time.Minute {
		t.Fatalf("clinic hours = %v-%v step %v", cfg.ClinicOpen, cfg.ClinicClose, cfg.SlotDuration)
	}
	if cfg.StrictGrid || cfg.MaxRangeDays != 62 {
		t.Fatalf("StrictGrid=%v MaxRangeDays=%d", cfg.StrictGrid, cfg.MaxRangeDays)
	}
	if cfg.TokenTTL != 24*time.Hour {
		t.Fatalf("TokenTTL = %v", cfg.TokenTTL)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CLINICBOOK_GRPC_ADDR", "127.0.0.1:6000")
	t.Setenv("PORT", "8080")
	t.Setenv("CLINICBOOK_DATABASE_DRIVER", "Memory")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("FRONTEND_URL", "http://localhost:5173, https://clinic.example.com")
	t.Setenv("CLINICBOOK_CLINIC_OPEN", "08:30")
	t.Setenv("CLINICBOOK_CLINIC_STRICT_GRID", "true")
	t.Setenv("CLINICBOOK_SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.GRPCAddr != "127.0.0.1:6000" {
		t.Fatalf("GRPCAddr = %q", cfg.GRPCAddr)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.DatabaseDriver != DriverMemory || cfg.JWTSecret != "s3cret" {
		t.Fatalf("driver=%q secret=%q", cfg.DatabaseDriver, cfg.JWTSecret)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://clinic.example.com" {
		t.Fatalf("CORSOrigins = %q", cfg.CORSOrigins)
	}
	if cfg.ClinicOpen != 8*time.Hour+30*time.Minute || !cfg.StrictGrid || cfg.ShutdownTimeout != 3*time.Second {
		t.Fatalf("open=%v strict=%v shutdown=%v", cfg.ClinicOpen, cfg.StrictGrid, cfg.ShutdownTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate error: %v", err)
	}
}

func TestLoad_RejectsBadDuration(t *testing.T) {
	t.Setenv("CLINICBOOK_GRPC_REQUEST_TIMEOUT", "soon")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "grpc.request_timeout") {
		t.Fatalf("err = %v, want grpc.request_timeout error", err)
	}
}

func TestValidate(t *testing.T) {
	cfg := Config{DatabaseDriver: "mongo"}
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected error")
	}
	for _, want := range []string{"auth.jwt_secret", "database.driver"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("err = %v, missing %q", err, want)
		}
	}
}

func TestParseClock(t *testing.T) {
	got, err := ParseClock("17:45")
	if err != nil || got != 17*time.Hour+45*time.Minute {
		t.Fatalf("ParseClock = %v, %v", got, err)
	}
	if _, err := ParseClock("5pm"); err == nil {
		t.Fatalf("expected error for 5pm")
	}
}
