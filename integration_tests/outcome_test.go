package integrationtest

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type outcomeRecorder struct {
	passed []string
	failed map[string]error
}

func (r *outcomeRecorder) OnStart(string) {}

func (r *outcomeRecorder) OnSuccess(name string, _ time.Duration) {
	r.passed = append(r.passed, name)
}

func (r *outcomeRecorder) OnFailure(name string, err error) {
	if r.failed == nil {
		r.failed = make(map[string]error)
	}
	r.failed[name] = err
}

func TestReportOutcome(t *testing.T) {
	scenarioErr := errors.New("status code: expected 200, got 401")

	tests := []struct {
		name        string
		scenarioErr error
		failed      bool
		wantPass    bool
		wantErr     error
	}{
		{"passed", nil, false, true, nil},
		{"scenario error", scenarioErr, true, false, scenarioErr},
		{"failed without scenario error", nil, true, false, errTestFailed},
		{"skipped soft failure", scenarioErr, false, false, scenarioErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &outcomeRecorder{}
			reportOutcome(rec, "TestX", tt.scenarioErr, tt.failed, time.Millisecond)

			if tt.wantPass {
				assert.Equal(t, []string{"TestX"}, rec.passed)
				assert.Empty(t, rec.failed)
				return
			}
			assert.Empty(t, rec.passed)
			assert.ErrorIs(t, rec.failed["TestX"], tt.wantErr)
		})
	}
}
