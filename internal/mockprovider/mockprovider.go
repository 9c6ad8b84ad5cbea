// Package mockprovider serves a local stand-in for the OpenWeatherMap
// current-weather endpoint.
package mockprovider

import (
	_ "embed"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"
)

//go:embed fixtures/london.json
var londonFixture []byte

// LondonFixture returns a copy of the 200 body served for London.
func LondonFixture() []byte {
	out := make([]byte, len(londonFixture))
	copy(out, londonFixture)
	return out
}

type Options struct {
	// APIKey is the only appid accepted. Anything else gets 401.
	APIKey string
	// Delay is slept before every response.
	Delay time.Duration
	// Body replaces the London fixture when set.
	Body []byte
}

// NewServer starts a mock provider. The caller must Close it.
func NewServer(opts Options) *httptest.Server {
	return httptest.NewServer(Handler(opts))
}

func Handler(opts Options) http.Handler {
	body := opts.Body
	if body == nil {
		body = londonFixture
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/weather", func(w http.ResponseWriter, r *http.Request) {
		if opts.Delay > 0 {
			time.Sleep(opts.Delay)
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")

		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			_, _ = w.Write([]byte(`{"cod":405,"message":"method not allowed"}`))
			return
		}

		q := r.URL.Query().Get("q")
		apiKey := r.URL.Query().Get("appid")
		if apiKey != opts.APIKey {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"cod":401,"message":"Invalid API key. Please see https://openweathermap.org/faq#error401 for more info."}`))
			return
		}
		if strings.EqualFold(q, "London") {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(body)
			return
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"cod":"404","message":"city not found"}`))
	})
	return mux
}
