package schema

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/fakhrymubarak/weather-api-conformance/internal/config"
	"github.com/fakhrymubarak/weather-api-conformance/internal/mockprovider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/sjson"
)

func loadBundled(t *testing.T) *Validator {
	t.Helper()
	v, err := Load(config.ResolvePath("schemas/weather_schema.json"))
	require.NoError(t, err)
	return v
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSchemaNotFound))
}

func TestCompile_InvalidSchema(t *testing.T) {
	_, err := Compile("broken", []byte(`{"type": 12}`))
	assert.Error(t, err)
}

func TestValidate_Fixture(t *testing.T) {
	v := loadBundled(t)
	assert.NoError(t, v.Validate(mockprovider.LondonFixture()))
}

func TestValidate_Violations(t *testing.T) {
	v := loadBundled(t)
	fixture := mockprovider.LondonFixture()

	tests := []struct {
		name   string
		mutate func([]byte) ([]byte, error)
		want   string
	}{
		{
			name:   "missing top-level field",
			mutate: func(b []byte) ([]byte, error) { return sjson.DeleteBytes(b, "visibility") },
			want:   "visibility",
		},
		{
			name:   "missing nested field",
			mutate: func(b []byte) ([]byte, error) { return sjson.DeleteBytes(b, "sys.sunrise") },
			want:   "sunrise",
		},
		{
			name:   "null coordinate",
			mutate: func(b []byte) ([]byte, error) { return sjson.SetBytes(b, "coord.lat", nil) },
			want:   "lat",
		},
		{
			name:   "wrong type",
			mutate: func(b []byte) ([]byte, error) { return sjson.SetBytes(b, "name", 42) },
			want:   "name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := tt.mutate(fixture)
			require.NoError(t, err)

			err = v.Validate(body)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.NotEmpty(t, verr.Violations)
			assert.Contains(t, verr.Error(), tt.want)
		})
	}
}

func TestValidate_NotJSON(t *testing.T) {
	v := loadBundled(t)
	err := v.Validate([]byte("not-json"))
	require.Error(t, err)

	var verr *ValidationError
	assert.False(t, errors.As(err, &verr))
}

func TestValidate_ErrorBodyRejected(t *testing.T) {
	v := loadBundled(t)
	assert.Error(t, v.Validate([]byte(`{"cod":"404","message":"city not found"}`)))
}
