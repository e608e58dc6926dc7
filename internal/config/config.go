package config

import (
	"encoding/json"
	"flag"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"crudgen/internal/artifact"
	"crudgen/internal/generator"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string `json:"port"`

	// Сервис генерации
	BaseURL    string `json:"baseUrl"`
	TimeoutSec int    `json:"timeoutSec"`
	DebounceMS int    `json:"debounceMs"`

	LogLevel  string `json:"logLevel"`  // debug | info | warn | error
	LogFormat string `json:"logFormat"` // text | json

	MaxSessions int `json:"maxSessions"`

	// Куда складывать скачанные архивы
	ArtifactDriver string `json:"artifactDriver"` // "local" (default) | "s3"
	ArtifactsRoot  string `json:"artifactsRoot"`  // для local

	S3Region    string `json:"s3Region"`
	S3Bucket    string `json:"s3Bucket"`
	S3Prefix    string `json:"s3Prefix"`
	S3Endpoint  string `json:"s3Endpoint"`
	S3AccessKey string `json:"s3AccessKey"`
	S3SecretKey string `json:"s3SecretKey"`
	S3UseSSL    bool   `json:"s3UseSsl"`
}

func Default() Config {
	return Config{
		Port:       "8080",
		BaseURL:    generator.DefaultBaseURL,
		TimeoutSec: 45,
		DebounceMS: 500,

		LogLevel:  "info",
		LogFormat: "text",

		MaxSessions: 256,

		ArtifactDriver: artifact.DriverLocal,
		ArtifactsRoot:  ".",
	}
}

func (c Config) Timeout() time.Duration  { return time.Duration(c.TimeoutSec) * time.Second }
func (c Config) Debounce() time.Duration { return time.Duration(c.DebounceMS) * time.Millisecond }

func (c Config) Artifacts() artifact.Settings {
	return artifact.Settings{
		Driver: c.ArtifactDriver,
		Root:   c.ArtifactsRoot,
		S3: artifact.S3Config{
			Endpoint:  c.S3Endpoint,
			Region:    c.S3Region,
			AccessKey: c.S3AccessKey,
			SecretKey: c.S3SecretKey,
			Bucket:    c.S3Bucket,
			Prefix:    c.S3Prefix,
			UseSSL:    c.S3UseSSL,
		},
	}
}

func loadJSON(path string, c Config) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := json.Unmarshal(b, &c); err != nil {
		return c, err
	}
	return c, nil
}

func getenv(k, fallback string) string {
	if v, ok := os.LookupEnv(k); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func getenvBool(k string, fallback bool) bool {
	if v, ok := os.LookupEnv(k); ok {
		if b, ok := parseBool(v); ok {
			return b
		}
	}
	return fallback
}

func getenvInt(k string, fallback int) int {
	if v, ok := os.LookupEnv(k); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return fallback
}

func parseBool(v string) (bool, bool) {
	switch strings.TrimSpace(strings.ToLower(v)) {
	case "1", "true", "yes":
		return true, true
	case "0", "false", "no":
		return false, true
	}
	return false, false
}

// Load: значения по умолчанию -> JSON (если файл есть) -> .env -> переменные CRUDGEN_*.
func Load(jsonPath string) (Config, error) {
	cfg := Default()

	if jsonPath != "" {
		if st, err := os.Stat(jsonPath); err == nil && !st.IsDir() {
			c2, err := loadJSON(jsonPath, cfg)
			if err != nil {
				return cfg, err
			}
			cfg = c2
		}
	}

	// .env не обязателен; уже выставленные переменные окружения не перетираются
	_ = godotenv.Load()

	cfg.Port = getenv("CRUDGEN_PORT", cfg.Port)
	cfg.BaseURL = getenv("CRUDGEN_BASE_URL", cfg.BaseURL)
	cfg.TimeoutSec = getenvInt("CRUDGEN_TIMEOUT_SEC", cfg.TimeoutSec)
	cfg.DebounceMS = getenvInt("CRUDGEN_DEBOUNCE_MS", cfg.DebounceMS)
	cfg.LogLevel = getenv("CRUDGEN_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getenv("CRUDGEN_LOG_FORMAT", cfg.LogFormat)
	cfg.MaxSessions = getenvInt("CRUDGEN_MAX_SESSIONS", cfg.MaxSessions)

	cfg.ArtifactDriver = getenv("CRUDGEN_ARTIFACT_DRIVER", cfg.ArtifactDriver)
	cfg.ArtifactsRoot = getenv("CRUDGEN_ARTIFACTS_ROOT", cfg.ArtifactsRoot)
	cfg.S3Region = getenv("CRUDGEN_S3_REGION", cfg.S3Region)
	cfg.S3Bucket = getenv("CRUDGEN_S3_BUCKET", cfg.S3Bucket)
	cfg.S3Prefix = getenv("CRUDGEN_S3_PREFIX", cfg.S3Prefix)
	cfg.S3Endpoint = getenv("CRUDGEN_S3_ENDPOINT", cfg.S3Endpoint)
	cfg.S3AccessKey = getenv("CRUDGEN_S3_ACCESS_KEY", cfg.S3AccessKey)
	cfg.S3SecretKey = getenv("CRUDGEN_S3_SECRET_KEY", cfg.S3SecretKey)
	cfg.S3UseSSL = getenvBool("CRUDGEN_S3_USE_SSL", cfg.S3UseSSL)

	return cfg, nil
}

// LoadWithArgs: Load плюс флаги командной строки (для cmd/server).
func LoadWithArgs(defaultPath string, args []string) (Config, error) {
	// сначала ищем -config, чтобы знать, какой JSON читать
	pre := flag.NewFlagSet("config", flag.ContinueOnError)
	pre.SetOutput(io.Discard)
	configPath := pre.String("config", defaultPath, "")
	_ = pre.Parse(filterConfigArgs(args))

	cfg, err := Load(*configPath)
	if err != nil {
		return cfg, err
	}

	fs := flag.NewFlagSet("crudgen", flag.ContinueOnError)
	fs.String("config", defaultPath, "Path to config JSON")
	port := fs.String("port", cfg.Port, "HTTP port")
	baseURL := fs.String("base-url", cfg.BaseURL, "Generator service base URL")
	timeout := fs.Int("timeout-sec", cfg.TimeoutSec, "Generator request timeout, seconds")
	debounce := fs.Int("debounce-ms", cfg.DebounceMS, "Preview debounce, milliseconds")
	level := fs.String("log-level", cfg.LogLevel, "Log level (debug/info/warn/error)")
	format := fs.String("log-format", cfg.LogFormat, "Log format (text/json)")
	sessions := fs.Int("max-sessions", cfg.MaxSessions, "Max live editor sessions")
	driver := fs.String("artifact-driver", cfg.ArtifactDriver, "Artifact driver (local/s3)")
	root := fs.String("artifacts-root", cfg.ArtifactsRoot, "Local artifacts root (if driver=local)")
	s3r := fs.String("s3-region", cfg.S3Region, "S3 region")
	s3b := fs.String("s3-bucket", cfg.S3Bucket, "S3 bucket")
	s3p := fs.String("s3-prefix", cfg.S3Prefix, "S3 key prefix")
	s3e := fs.String("s3-endpoint", cfg.S3Endpoint, "S3 endpoint (MinIO/custom)")
	s3ssl := fs.String("s3-use-ssl", strconv.FormatBool(cfg.S3UseSSL), "Use TLS for S3 (true/false)")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	cfg.Port = strings.TrimSpace(*port)
	cfg.BaseURL = strings.TrimSpace(*baseURL)
	cfg.TimeoutSec = *timeout
	cfg.DebounceMS = *debounce
	cfg.LogLevel = strings.TrimSpace(*level)
	cfg.LogFormat = strings.TrimSpace(*format)
	cfg.MaxSessions = *sessions
	cfg.ArtifactDriver = strings.TrimSpace(*driver)
	cfg.ArtifactsRoot = strings.TrimSpace(*root)
	cfg.S3Region = strings.TrimSpace(*s3r)
	cfg.S3Bucket = strings.TrimSpace(*s3b)
	cfg.S3Prefix = strings.TrimSpace(*s3p)
	cfg.S3Endpoint = strings.TrimSpace(*s3e)
	if b, ok := parseBool(*s3ssl); ok {
		cfg.S3UseSSL = b
	}

	return cfg, nil
}

// filterConfigArgs оставляет только -config/--config, остальные флаги разберёт второй проход
func filterConfigArgs(args []string) []string {
	var out []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		name := strings.TrimLeft(a, "-")
		if !strings.HasPrefix(a, "-") {
			continue
		}
		if name == "config" && i+1 < len(args) {
			out = append(out, "-config", args[i+1])
			i++
			continue
		}
		if strings.HasPrefix(name, "config=") {
			out = append(out, "-"+name)
		}
	}
	return out
}
