package config

import (
	"flag"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var once sync.Once
var logger *zap.SugaredLogger
var loggerOnce sync.Once

// Config is a read-only snapshot of every value the scenarios need.
type Config struct {
	BaseURL    string
	APIKey     string
	SchemaPath string

	RequestTimeout time.Duration
	RateLimit      float64
	RateBurst      int

	ValidCity        string
	ExpectedCountry  string
	UnknownCity      string
	InvalidAPIKey    string
	LatencyThreshold time.Duration
	StrictLatency    bool
}

// isTestRun returns true if the current process is a Go test binary.
func isTestRun() bool {
	return flag.Lookup("test.v") != nil || filepath.Ext(os.Args[0]) == ".test"
}

func setDefaults() {
	viper.SetDefault("weather.base_url", "https://api.openweathermap.org/data/2.5")
	viper.SetDefault("weather.schema_path", "schemas/weather_schema.json")
	viper.SetDefault("client.timeout", "10s")
	viper.SetDefault("client.rate_limit.rate", 1.0)
	viper.SetDefault("client.rate_limit.burst", 5)
	viper.SetDefault("scenarios.valid_city", "London")
	viper.SetDefault("scenarios.expected_country", "GB")
	viper.SetDefault("scenarios.unknown_city", "NonExistentCity123456")
	viper.SetDefault("scenarios.invalid_api_key", "invalid_key")
	viper.SetDefault("scenarios.latency_threshold", "2000ms")
	viper.SetDefault("scenarios.strict_latency", false)

	_ = viper.BindEnv("weather.base_url", "BASE_URL")
	_ = viper.BindEnv("weather.schema_path", "WEATHER_SCHEMA_PATH")
}

func initConfig() {
	once.Do(func() {
		setDefaults()

		root, err := getProjectRoot()
		if err != nil {
			GetLogger().Warnw("Project root not found, using working directory", "error", err)
			root = "."
		}
		viper.SetConfigType("yaml")

		viper.SetConfigName("config")
		viper.AddConfigPath(root)
		if err = viper.ReadInConfig(); err != nil {
			GetLogger().Warnw("Error reading config file, using defaults", "error", err)
		}

		if isTestRun() {
			viper.SetConfigName("config_test")
			if err = viper.MergeInConfig(); err != nil {
				GetLogger().Warnw("Error reading test config file", "error", err)
			}
		}
	})
}

func getProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}

// ResolvePath anchors a relative path at the project root. Outside a source
// checkout the path is returned unchanged and resolves against the working directory.
func ResolvePath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	root, err := getProjectRoot()
	if err != nil {
		return p
	}
	return filepath.Join(root, p)
}

func GetBaseURL() string {
	initConfig()
	return viper.GetString("weather.base_url")
}

// GetAPIKey reads the provider key from the environment, loading the project
// root .env first. Variables already set in the environment win.
// The key is a secret and never comes from the YAML files.
func GetAPIKey() string {
	_ = godotenv.Load(ResolvePath(".env"))
	if key := os.Getenv("API_KEY"); key != "" {
		return key
	}
	return os.Getenv("OPENWEATHERMAP_API_KEY")
}

func GetSchemaPath() string {
	initConfig()
	return ResolvePath(viper.GetString("weather.schema_path"))
}

// GetRequestTimeout returns the HTTP client timeout. Defaults to 10s if not set or invalid.
func GetRequestTimeout() time.Duration {
	initConfig()
	dur := viper.GetDuration("client.timeout")
	if dur <= 0 {
		return 10 * time.Second
	}
	return dur
}

// GetRateLimiterConfig returns the outbound request rate (per second) and burst.
// A rate of zero or less disables pacing.
func GetRateLimiterConfig() (rate float64, burst int) {
	initConfig()
	rate = viper.GetFloat64("client.rate_limit.rate")
	burst = viper.GetInt("client.rate_limit.burst")
	if burst <= 0 {
		burst = 1
	}
	return
}

func GetScenarioValue(key string) string {
	initConfig()
	return viper.GetString("scenarios." + key)
}

// GetLatencyThreshold returns the round-trip bound for the latency scenario.
// Defaults to 2s if not set or invalid.
func GetLatencyThreshold() time.Duration {
	initConfig()
	dur := viper.GetDuration("scenarios.latency_threshold")
	if dur <= 0 {
		return 2 * time.Second
	}
	return dur
}

func GetStrictLatency() bool {
	initConfig()
	return viper.GetBool("scenarios.strict_latency")
}

// Load snapshots the current configuration. Call it once before the suite runs.
func Load() Config {
	rate, burst := GetRateLimiterConfig()
	return Config{
		BaseURL:          GetBaseURL(),
		APIKey:           GetAPIKey(),
		SchemaPath:       GetSchemaPath(),
		RequestTimeout:   GetRequestTimeout(),
		RateLimit:        rate,
		RateBurst:        burst,
		ValidCity:        GetScenarioValue("valid_city"),
		ExpectedCountry:  GetScenarioValue("expected_country"),
		UnknownCity:      GetScenarioValue("unknown_city"),
		InvalidAPIKey:    GetScenarioValue("invalid_api_key"),
		LatencyThreshold: GetLatencyThreshold(),
		StrictLatency:    GetStrictLatency(),
	}
}

// ReloadConfigForTest resets the config singleton and reloads Viper config. Use only in tests.
func ReloadConfigForTest() {
	once = sync.Once{}
	initConfig()
}

func GetLogger() *zap.SugaredLogger {
	loggerOnce.Do(func() {
		// scenario failures log at error level; keep their lines free of stack traces
		l, err := zap.NewDevelopment(zap.AddStacktrace(zapcore.DPanicLevel))
		if err != nil {
			panic(err)
		}
		logger = l.Sugar()
	})
	return logger
}
