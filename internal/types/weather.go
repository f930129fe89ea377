package types

// WeatherDaySummary condenses the 3-hourly forecast samples of one calendar
// day into a single summary. Description and Icon carry the most frequent
// value among that day's samples.
type WeatherDaySummary struct {
	Date        string  `json:"date"` // YYYY-MM-DD
	MinTemp     float64 `json:"min_temp"`
	MaxTemp     float64 `json:"max_temp"`
	AvgTemp     float64 `json:"avg_temp"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	AvgWind     float64 `json:"avg_wind"`
	AvgHumidity float64 `json:"avg_humidity"`
	TotalRain   float64 `json:"total_rain"`
}

// CurrentWeather is a point-in-time observation for a location.
type CurrentWeather struct {
	Temp        float64 `json:"temp"`
	FeelsLike   float64 `json:"feels_like"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	WindSpeed   float64 `json:"wind_speed"`
	Humidity    float64 `json:"humidity"`
}
