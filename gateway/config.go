package gateway

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the serve-mode settings. Everything comes from environment
// variables; CGI mode takes no configuration at all.
type Config struct {
	ListenAddress string
	ScriptDir     string
	Timeout       time.Duration
	MaxOutput     int64
	// ExtraEnv is appended to every script's environment, NAME=value form.
	ExtraEnv []string
}

// GetEnv get environment value or return default value if not found
func GetEnv(name string, defaultValue string) string {
	val := os.Getenv(name)
	if val == "" {
		return defaultValue
	}
	return val
}

// GetEnvBool get environment value as bool or return default value if not found
func GetEnvBool(name string, defaultValue bool) bool {
	val := os.Getenv(name)
	if val == "" {
		return defaultValue
	}
	b, _ := strconv.ParseBool(val)
	return b
}

// GetEnvInt64 get environment value as int64 or return default value if not found
func GetEnvInt64(name string, defaultValue int64) int64 {
	val := os.Getenv(name)
	if val == "" {
		return defaultValue
	}
	b, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return defaultValue
	}
	return b
}

// LoadConfig reads the serve-mode settings from the environment. If
// CGI_ENV_FILE names a dotenv file, its entries are loaded into ExtraEnv.
func LoadConfig() (*Config, error) {
	config := &Config{
		ListenAddress: GetEnv("LISTEN_ADDRESS", ":8080"),
		ScriptDir:     GetEnv("SCRIPT_DIR", "cgi-bin"),
		MaxOutput:     GetEnvInt64("CGI_MAX_OUTPUT", 1<<20),
	}
	timeout := GetEnv("CGI_TIMEOUT", "30s")
	d, err := time.ParseDuration(timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid CGI_TIMEOUT %q: %w", timeout, err)
	}
	config.Timeout = d
	if envFile := GetEnv("CGI_ENV_FILE", ""); envFile != "" {
		extra, err := godotenv.Read(envFile)
		if err != nil {
			return nil, fmt.Errorf("could not read CGI_ENV_FILE: %w", err)
		}
		for name, value := range extra {
			config.ExtraEnv = append(config.ExtraEnv, name+"="+value)
		}
	}
	return config, nil
}
