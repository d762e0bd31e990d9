package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all parameters for every run mode.
type Config struct {
	Database DatabaseConfig
	RabbitMQ RabbitMQConfig
	HTTP     HTTPConfig
	Auth     AuthConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type RabbitMQConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	VHost    string
}

type HTTPConfig struct {
	OrderPort   int
	KitchenPort int
}

type AuthConfig struct {
	SessionTTLHours int
}

// Load reads a flat two-level YAML file: section headers ending with ":",
// then "key: value" lines. No nesting beyond that is supported.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer file.Close()

	cfg := &Config{
		HTTP: HTTPConfig{OrderPort: 3000, KitchenPort: 3002},
		Auth: AuthConfig{SessionTTLHours: 12},
	}
	scanner := bufio.NewScanner(file)

	var section string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasSuffix(line, ":") && !strings.Contains(strings.TrimSuffix(line, ":"), " ") {
			section = strings.TrimSuffix(line, ":")
			continue
		}

		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), `"'`)

		switch section {
		case "database":
			switch key {
			case "host":
				cfg.Database.Host = value
			case "port":
				cfg.Database.Port, _ = strconv.Atoi(value)
			case "user":
				cfg.Database.User = value
			case "password":
				cfg.Database.Password = value
			case "database":
				cfg.Database.Database = value
			}
		case "rabbitmq":
			switch key {
			case "host":
				cfg.RabbitMQ.Host = value
			case "port":
				cfg.RabbitMQ.Port, _ = strconv.Atoi(value)
			case "user":
				cfg.RabbitMQ.User = value
			case "password":
				cfg.RabbitMQ.Password = value
			case "vhost":
				cfg.RabbitMQ.VHost = value
			}
		case "http":
			switch key {
			case "order_port":
				cfg.HTTP.OrderPort, _ = strconv.Atoi(value)
			case "kitchen_port":
				cfg.HTTP.KitchenPort, _ = strconv.Atoi(value)
			}
		case "auth":
			if key == "session_ttl_hours" {
				cfg.Auth.SessionTTLHours, _ = strconv.Atoi(value)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	return cfg, nil
}
