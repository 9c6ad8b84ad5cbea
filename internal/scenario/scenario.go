// Package scenario defines the weather API conformance checks and runs them.
package scenario

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"

	"github.com/fakhrymubarak/weather-api-conformance/internal/check"
	"github.com/fakhrymubarak/weather-api-conformance/internal/client"
	"github.com/fakhrymubarak/weather-api-conformance/internal/model"
)

// Scenario is one independent request/assertion pair.
type Scenario struct {
	Name string
	// Soft scenarios still report failures but do not fail the run.
	Soft bool
	Run  func(ctx context.Context, env *Env) error
}

const (
	GetWeatherForCity       = "GetWeatherForCity"
	WeatherSchemaValidation = "WeatherSchemaValidation"
	ResponseTime            = "ResponseTime"
	InvalidAPIKey           = "InvalidAPIKey"
	InvalidCity             = "InvalidCity"
	WeatherDataValues       = "WeatherDataValues"
	AllFieldsPresent        = "AllFieldsPresent"
)

// Physical plausibility bounds. Temperature is Kelvin.
var (
	TemperatureRange = check.Open(173.15, 373.15)
	HumidityRange    = check.Closed(0, 100)
	PressureRange    = check.Open(870, 1085)
)

// Catalog returns every scenario in run order. strictLatency makes the
// latency scenario a hard gate.
func Catalog(strictLatency bool) []Scenario {
	return []Scenario{
		{Name: GetWeatherForCity, Run: getWeatherForCity},
		{Name: WeatherSchemaValidation, Run: weatherSchemaValidation},
		{Name: ResponseTime, Soft: !strictLatency, Run: responseTime},
		{Name: InvalidAPIKey, Run: invalidAPIKey},
		{Name: InvalidCity, Run: invalidCity},
		{Name: WeatherDataValues, Run: weatherDataValues},
		{Name: AllFieldsPresent, Run: allFieldsPresent},
	}
}

// Filter keeps the scenarios whose name matches pattern. An empty pattern keeps all.
func Filter(scenarios []Scenario, pattern string) ([]Scenario, error) {
	if pattern == "" {
		return scenarios, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid scenario filter: %w", err)
	}
	var out []Scenario
	for _, s := range scenarios {
		if re.MatchString(s.Name) {
			out = append(out, s)
		}
	}
	return out, nil
}

// lookupOK fetches the valid city and requires a 200.
func lookupOK(ctx context.Context, env *Env) (*client.Response, error) {
	resp, err := env.Client.Lookup(ctx, env.Config.ValidCity)
	if err != nil {
		return nil, err
	}
	if err := check.Status(resp.StatusCode, http.StatusOK); err != nil {
		return nil, err
	}
	return resp, nil
}

func getWeatherForCity(ctx context.Context, env *Env) error {
	resp, err := lookupOK(ctx, env)
	if err != nil {
		return err
	}
	return errors.Join(
		check.JSONContentType(resp.Header),
		check.FieldEquals(resp.Body, "name", env.Config.ValidCity),
		check.FieldEquals(resp.Body, "sys.country", env.Config.ExpectedCountry),
		check.FieldsPresent(resp.Body, "coord.lon", "coord.lat"),
	)
}

func weatherSchemaValidation(ctx context.Context, env *Env) error {
	v, err := env.Schema()
	if err != nil {
		return err
	}
	resp, err := env.Client.Lookup(ctx, env.Config.ValidCity)
	if err != nil {
		return err
	}
	if err := v.Validate(resp.Body); err != nil {
		return fmt.Errorf("%w: %v", check.ErrAssertion, err)
	}
	return nil
}

func responseTime(ctx context.Context, env *Env) error {
	resp, err := env.Client.Lookup(ctx, env.Config.ValidCity)
	if err != nil {
		return err
	}
	return check.Below("response time", resp.Elapsed, env.Config.LatencyThreshold)
}

func invalidAPIKey(ctx context.Context, env *Env) error {
	resp, err := env.Client.Send(ctx, env.Config.ValidCity, env.Config.InvalidAPIKey)
	if err != nil {
		return err
	}
	return check.Status(resp.StatusCode, http.StatusUnauthorized)
}

func invalidCity(ctx context.Context, env *Env) error {
	resp, err := env.Client.Lookup(ctx, env.Config.UnknownCity)
	if err != nil {
		return err
	}
	return check.Status(resp.StatusCode, http.StatusNotFound)
}

func weatherDataValues(ctx context.Context, env *Env) error {
	resp, err := lookupOK(ctx, env)
	if err != nil {
		return err
	}
	var result model.WeatherQueryResult
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return fmt.Errorf("%w: decode body: %v", check.ErrAssertion, err)
	}
	return errors.Join(
		check.InRange("main.temp", result.Main.Temp, TemperatureRange),
		check.InRange("main.humidity", result.Main.Humidity, HumidityRange),
		check.InRange("main.pressure", result.Main.Pressure, PressureRange),
	)
}

func allFieldsPresent(ctx context.Context, env *Env) error {
	resp, err := env.Client.Lookup(ctx, env.Config.ValidCity)
	if err != nil {
		return err
	}
	return check.FieldsPresent(resp.Body, model.RequiredFields...)
}
