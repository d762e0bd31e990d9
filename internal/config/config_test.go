package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	content := `# comment
database:
  host: db.local
  port: 5433
  user: foh
  password: "secret"
  database: front_of_house

rabbitmq:
  host: mq.local
  port: 5673
  user: guest
  password: guest
  vhost: /foh

http:
  order_port: 8080
  kitchen_port: 8082

auth:
  session_ttl_hours: 6
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Database.Host != "db.local" || cfg.Database.Port != 5433 {
		t.Errorf("database = %+v", cfg.Database)
	}
	if cfg.Database.Password != "secret" {
		t.Errorf("quoted password not unquoted: %q", cfg.Database.Password)
	}
	if cfg.RabbitMQ.VHost != "/foh" {
		t.Errorf("vhost = %q", cfg.RabbitMQ.VHost)
	}
	if cfg.HTTP.OrderPort != 8080 || cfg.HTTP.KitchenPort != 8082 {
		t.Errorf("http = %+v", cfg.HTTP)
	}
	if cfg.Auth.SessionTTLHours != 6 {
		t.Errorf("session ttl = %d", cfg.Auth.SessionTTLHours)
	}
}

func TestLoadDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("database:\n  host: x\n"), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HTTP.OrderPort != 3000 || cfg.HTTP.KitchenPort != 3002 {
		t.Errorf("default ports = %+v", cfg.HTTP)
	}
	if cfg.Auth.SessionTTLHours != 12 {
		t.Errorf("default session ttl = %d", cfg.Auth.SessionTTLHours)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
