package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blackwell-systems/dexctl/internal/config"
)

// isolate points the config and .env lookups at a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	orig := config.DotEnvFile
	config.DotEnvFile = filepath.Join(dir, ".env")
	t.Cleanup(func() { config.DotEnvFile = orig })
	t.Setenv("DEXCTL_CONFIG", "")
	return dir
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := config.Load(filepath.Join(dir, "nope.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Catalogue.APIBase != "https://pokeapi.co/api/v2" {
		t.Errorf("APIBase = %q", cfg.Catalogue.APIBase)
	}
	if cfg.Catalogue.PageSize != 100 {
		t.Errorf("PageSize = %d, want 100", cfg.Catalogue.PageSize)
	}
	if cfg.Catalogue.UserAgent != "dexctl" {
		t.Errorf("UserAgent = %q, want dexctl", cfg.Catalogue.UserAgent)
	}
	if cfg.Auth.AdminUser != "admin" || cfg.Auth.Password != "password" {
		t.Errorf("Auth = %+v", cfg.Auth)
	}
	if !strings.HasSuffix(cfg.Storage.Path, filepath.Join("dexctl", "dexctl.db")) {
		t.Errorf("Storage.Path = %q", cfg.Storage.Path)
	}
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yml")
	data := `
catalogue:
  api_base: http://localhost:9000/api
  page_size: 20
  concurrency: 4
auth:
  admin_user: oak
storage:
  path: ` + filepath.Join(dir, "x.db") + `
`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DEXCTL_CATALOGUE_PAGE_SIZE", "50")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Catalogue.APIBase != "http://localhost:9000/api" {
		t.Errorf("APIBase = %q", cfg.Catalogue.APIBase)
	}
	if cfg.Catalogue.PageSize != 50 {
		t.Errorf("PageSize = %d, want env override 50", cfg.Catalogue.PageSize)
	}
	if cfg.Catalogue.Concurrency != 4 {
		t.Errorf("Concurrency = %d, want 4", cfg.Catalogue.Concurrency)
	}
	if cfg.Auth.AdminUser != "oak" {
		t.Errorf("AdminUser = %q, want oak", cfg.Auth.AdminUser)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want default info", cfg.Log.Level)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	t.Setenv("DEXCTL_AUTH_ADMIN_USER", "")
	os.Unsetenv("DEXCTL_AUTH_ADMIN_USER")
	if err := os.WriteFile(config.DotEnvFile, []byte("DEXCTL_AUTH_ADMIN_USER=elm\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("DEXCTL_AUTH_ADMIN_USER") })

	cfg, err := config.Load(filepath.Join(dir, "none.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Auth.AdminUser != "elm" {
		t.Errorf("AdminUser = %q, want elm from .env", cfg.Auth.AdminUser)
	}
}

func TestLoad_InvalidValue(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte("log:\n  format: xml\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := config.Load(path); err == nil {
		t.Error("expected validation error")
	}
}

func TestSave_ThenLoad(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "nested", "config.yml")

	cfg := config.Default()
	cfg.Catalogue.Concurrency = 8
	cfg.Catalogue.Timeout = "10s"
	cfg.Storage.Path = filepath.Join(dir, "dex.db")
	if err := config.Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Catalogue.Concurrency != 8 || got.Catalogue.Timeout != "10s" {
		t.Errorf("Catalogue = %+v", got.Catalogue)
	}
	if got.Storage.Path != cfg.Storage.Path {
		t.Errorf("Storage.Path = %q, want %q", got.Storage.Path, cfg.Storage.Path)
	}
}

func TestPath(t *testing.T) {
	t.Setenv("DEXCTL_CONFIG", "/etc/dexctl.yml")
	if got := config.Path(""); got != "/etc/dexctl.yml" {
		t.Errorf("Path from env = %q", got)
	}
	if got := config.Path("/tmp/x.yml"); got != "/tmp/x.yml" {
		t.Errorf("explicit Path = %q", got)
	}
	t.Setenv("DEXCTL_CONFIG", "")
	if got := config.Path(""); got != config.DefaultPath() {
		t.Errorf("default Path = %q", got)
	}
}
