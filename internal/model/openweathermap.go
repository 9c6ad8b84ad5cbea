package model

// WeatherQueryResult is the current-weather body returned for a city query.
// Numeric fields the scenarios inspect are pointers so an explicit null can be
// told apart from a zero reading.
type WeatherQueryResult struct {
	Coord struct {
		Lon *float64 `json:"lon"`
		Lat *float64 `json:"lat"`
	} `json:"coord"`
	Weather []struct {
		ID          int    `json:"id"`
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Base string `json:"base"`
	Main struct {
		Temp      *float64 `json:"temp"`
		FeelsLike *float64 `json:"feels_like"`
		TempMin   *float64 `json:"temp_min"`
		TempMax   *float64 `json:"temp_max"`
		Pressure  *float64 `json:"pressure"`
		Humidity  *float64 `json:"humidity"`
		SeaLevel  *float64 `json:"sea_level"`
		GrndLevel *float64 `json:"grnd_level"`
	} `json:"main"`
	Visibility *int `json:"visibility"`
	Wind       struct {
		Speed float64 `json:"speed"`
		Deg   int     `json:"deg"`
		Gust  float64 `json:"gust"`
	} `json:"wind"`
	Clouds struct {
		All *int `json:"all"`
	} `json:"clouds"`
	Dt  *int64 `json:"dt"`
	Sys struct {
		Type    *int   `json:"type"`
		ID      *int   `json:"id"`
		Country string `json:"country"`
		Sunrise *int64 `json:"sunrise"`
		Sunset  *int64 `json:"sunset"`
	} `json:"sys"`
	Timezone *int   `json:"timezone"`
	ID       *int64 `json:"id"`
	Name     string `json:"name"`
	Cod      any    `json:"cod"`
}

// RequiredFields lists every dotted path a successful response must carry
// with a non-null value. The bundled JSON schema requires the same set, so
// both checks agree on presence; the schema also checks value types, so a
// present but mistyped field (e.g. "visibility":"10000") passes the presence
// check and fails the schema.
var RequiredFields = []string{
	"coord.lon",
	"coord.lat",
	"weather",
	"main.temp",
	"main.feels_like",
	"main.temp_min",
	"main.temp_max",
	"main.pressure",
	"main.humidity",
	"main.sea_level",
	"main.grnd_level",
	"visibility",
	"clouds.all",
	"dt",
	"sys.type",
	"sys.id",
	"sys.country",
	"sys.sunrise",
	"sys.sunset",
	"timezone",
	"id",
	"name",
	"cod",
}
