package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
refresh_interval: 12h
employers:
  - МТС
  - YOTA
source:
  per_page: 50
  timeout: 10s
database:
  driver: sqlite
  dsn: test.db
  table: vacancy_info
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RefreshInterval != 12*time.Hour {
		t.Errorf("RefreshInterval = %v, want 12h", cfg.RefreshInterval)
	}
	if len(cfg.Employers) != 2 || cfg.Employers[0] != "МТС" {
		t.Errorf("Employers = %v", cfg.Employers)
	}
	if cfg.Source.PerPage != 50 {
		t.Errorf("PerPage = %d, want 50", cfg.Source.PerPage)
	}
	if cfg.Source.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", cfg.Source.Timeout)
	}
	if cfg.Database.Table != "vacancy_info" {
		t.Errorf("Table = %q", cfg.Database.Table)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
employers:
  - Acme
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Source.BaseURL != defaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.Source.BaseURL, defaultBaseURL)
	}
	if cfg.Source.PerPage != defaultPerPage {
		t.Errorf("PerPage = %d, want %d", cfg.Source.PerPage, defaultPerPage)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Driver = %q, want sqlite", cfg.Database.Driver)
	}
	if cfg.Database.Table != defaultTable {
		t.Errorf("Table = %q, want %q", cfg.Database.Table, defaultTable)
	}
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	t.Setenv("VACSTAT_TEST_DSN", "postgres://user:secret@db:5432/vacancies")
	path := writeConfig(t, `
employers:
  - Acme
database:
  driver: postgres
  dsn: ${VACSTAT_TEST_DSN}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.DSN != "postgres://user:secret@db:5432/vacancies" {
		t.Errorf("DSN = %q, env var not expanded", cfg.Database.DSN)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err == nil {
		t.Fatal("Load: expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "employers: [broken")
	if _, err := Load(path); err == nil {
		t.Fatal("Load: expected error for invalid YAML")
	}
}

func TestLoad_NoEmployers(t *testing.T) {
	path := writeConfig(t, `
refresh_interval: 1h
employers: []
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load: expected validation error for empty roster")
	}
}

func TestLoad_BadDriver(t *testing.T) {
	path := writeConfig(t, `
employers:
  - Acme
database:
  driver: oracle
  dsn: whatever
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load: expected validation error for unsupported driver")
	}
}

func TestLoad_PerPageOutOfRange(t *testing.T) {
	path := writeConfig(t, `
employers:
  - Acme
source:
  per_page: 500
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load: expected validation error for per_page > 100")
	}
}
