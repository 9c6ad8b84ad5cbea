package scenario

import (
	"context"
	"fmt"
	"time"

	"github.com/fakhrymubarak/weather-api-conformance/internal/listener"
)

type Result struct {
	Name    string
	Soft    bool
	Err     error
	Elapsed time.Duration
}

func (r Result) Passed() bool {
	return r.Err == nil
}

type Report struct {
	Results []Result
}

func (r Report) Passed() int {
	n := 0
	for _, res := range r.Results {
		if res.Passed() {
			n++
		}
	}
	return n
}

func (r Report) Failed() []Result {
	var out []Result
	for _, res := range r.Results {
		if !res.Passed() {
			out = append(out, res)
		}
	}
	return out
}

// HardFailures counts failed scenarios that are not Soft.
func (r Report) HardFailures() int {
	n := 0
	for _, res := range r.Failed() {
		if !res.Soft {
			n++
		}
	}
	return n
}

// Runner executes scenarios one after another against a shared Env.
type Runner struct {
	env      *Env
	listener listener.Listener
}

func NewRunner(env *Env, listeners ...listener.Listener) *Runner {
	return &Runner{env: env, listener: listener.Multi(listeners)}
}

// Run executes every scenario in order. One scenario's failure never stops
// the others; once ctx is done the remaining scenarios fail with its error.
func (r *Runner) Run(ctx context.Context, scenarios []Scenario) Report {
	report := Report{Results: make([]Result, 0, len(scenarios))}
	for _, s := range scenarios {
		r.listener.OnStart(s.Name)

		start := time.Now()
		err := ctx.Err()
		if err == nil {
			err = r.runOne(ctx, s)
		}
		res := Result{Name: s.Name, Soft: s.Soft, Err: err, Elapsed: time.Since(start)}

		if err != nil {
			r.listener.OnFailure(s.Name, err)
		} else {
			r.listener.OnSuccess(s.Name, res.Elapsed)
		}
		report.Results = append(report.Results, res)
	}
	return report
}

func (r *Runner) runOne(ctx context.Context, s Scenario) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("scenario panicked: %v", p)
		}
	}()
	return s.Run(ctx, r.env)
}
