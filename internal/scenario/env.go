package scenario

import (
	"sync"

	"github.com/fakhrymubarak/weather-api-conformance/internal/client"
	"github.com/fakhrymubarak/weather-api-conformance/internal/config"
	"github.com/fakhrymubarak/weather-api-conformance/internal/schema"
)

// Env is what every scenario reads. Nothing in it changes after the first
// schema load.
type Env struct {
	Config config.Config
	Client client.WeatherClient

	schemaOnce sync.Once
	validator  *schema.Validator
	schemaErr  error
}

func NewEnv(cfg config.Config, c client.WeatherClient) *Env {
	return &Env{Config: cfg, Client: c}
}

// Schema loads the response schema on first use. A load error is kept and
// returned to every caller so it fails the scenario rather than the run.
func (e *Env) Schema() (*schema.Validator, error) {
	e.schemaOnce.Do(func() {
		e.validator, e.schemaErr = schema.Load(e.Config.SchemaPath)
	})
	return e.validator, e.schemaErr
}
