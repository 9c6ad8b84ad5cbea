package integrationtest

import (
	"errors"
	"net/http/httptest"
	"os"
	"time"

	"github.com/fakhrymubarak/weather-api-conformance/internal/config"
	"github.com/fakhrymubarak/weather-api-conformance/internal/listener"
	"github.com/fakhrymubarak/weather-api-conformance/internal/mockprovider"
)

const mockAPIKey = "test_api_key"

// liveRun reports whether the suite should hit the real provider.
func liveRun() bool {
	return os.Getenv("CONFORMANCE_LIVE") == "1" && config.GetAPIKey() != ""
}

func runMockProvider() *httptest.Server {
	return mockprovider.NewServer(mockprovider.Options{APIKey: mockAPIKey})
}

// suiteConfig returns the live configuration, or one pointed at provider.
func suiteConfig(provider *httptest.Server) config.Config {
	cfg := config.Load()
	if provider != nil {
		cfg.BaseURL = provider.URL
		cfg.APIKey = mockAPIKey
	}
	return cfg
}

var errTestFailed = errors.New("test failed, see test output")

// reportOutcome tells l how a suite test ended. A test marked failed without a
// scenario error still counts as a failure.
func reportOutcome(l listener.Listener, name string, scenarioErr error, failed bool, elapsed time.Duration) {
	if scenarioErr == nil && failed {
		scenarioErr = errTestFailed
	}
	if scenarioErr != nil {
		l.OnFailure(name, scenarioErr)
		return
	}
	l.OnSuccess(name, elapsed)
}
