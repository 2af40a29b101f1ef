package models

import "strings"

// ConditionNames is the fixed OpenWeather condition enumeration both models
// were trained on, in one-hot column order. Order matters: it matches the
// weather_* columns of the taxi model's feature layout.
var ConditionNames = [10]string{
	"Rain", "Clouds", "Clear", "Snow", "Mist",
	"Haze", "Smoke", "Drizzle", "Fog", "Thunderstorm",
}

// WeatherObservation is a normalized weather snapshot valid for a single
// timestamp, either live or matched from an hourly forecast list.
type WeatherObservation struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	Humidity  float64 `json:"humidity"`
	WindSpeed float64 `json:"wind_speed"`
	Condition string  `json:"condition"`
}

// OneHot returns the condition indicator vector over ConditionNames.
// An unrecognized condition yields all zeros, which is valid model input.
func (o WeatherObservation) OneHot() [10]float64 {
	var v [10]float64
	for i, name := range ConditionNames {
		if o.Condition == name {
			v[i] = 1
		}
	}
	return v
}

// HasRain reports whether the condition label mentions rain.
func (o WeatherObservation) HasRain() bool {
	return strings.Contains(strings.ToLower(o.Condition), "rain")
}

// HasSnow reports whether the condition label mentions snow.
func (o WeatherObservation) HasSnow() bool {
	return strings.Contains(strings.ToLower(o.Condition), "snow")
}
