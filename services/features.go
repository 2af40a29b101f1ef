package services

import (
	"math"
	"time"

	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"

	"github.com/iwsanren/comp47360-team9/models"
)

// Peak pickup hours for the taxi model and rush hours for the subway model
// are the same six-hour set.
var peakHours = map[int]bool{7: true, 8: true, 9: true, 16: true, 17: true, 18: true}

var usCalendar = newUSCalendar()

func newUSCalendar() *cal.Calendar {
	c := &cal.Calendar{Name: "us-federal"}
	c.AddHoliday(us.Holidays...)
	return c
}

func isUSHoliday(t time.Time) bool {
	actual, observed, _ := usCalendar.IsHoliday(t)
	return actual || observed
}

// TimeFeatures are the temporal inputs shared by both feature builders,
// derived once per request from the effective timestamp.
type TimeFeatures struct {
	Time       time.Time
	PickupHour int // rounded: minutes >= 30 go to the next hour
	Hour       int // unrounded, used by the subway model
	DayOfWeek  int // 0=Monday .. 6=Sunday
	Month      int
	IsWeekend  bool
	IsHoliday  bool
	IsPeakHour bool
}

// BuildTimeFeatures derives temporal features from t. Rounding at exactly 30
// minutes goes up to the next hour; the day-of-week is not advanced when a
// late-evening pickup hour wraps past midnight, matching the model's
// training data.
func BuildTimeFeatures(t time.Time) TimeFeatures {
	pickup := t.Hour()
	if t.Minute() >= 30 {
		pickup = (pickup + 1) % 24
	}
	day := (int(t.Weekday()) + 6) % 7

	return TimeFeatures{
		Time:       t,
		PickupHour: pickup,
		Hour:       t.Hour(),
		DayOfWeek:  day,
		Month:      int(t.Month()),
		IsWeekend:  day >= 5,
		IsHoliday:  isUSHoliday(t),
		IsPeakHour: peakHours[pickup],
	}
}

// TaxiFeatures is one zone's input record for the taxi demand model. The
// struct fields mirror the model's positional column layout; Vector is the
// single place that layout is encoded.
type TaxiFeatures struct {
	PickupHour    int
	DayOfWeek     int
	IsWeekend     bool
	IsHoliday     bool
	IsPeakHour    bool
	Temp          float64
	Humidity      float64
	WindSpeed     float64
	FeelsLike     float64
	CentroidLat   float64
	CentroidLon   float64
	PULocationID  int
	WeatherOneHot [10]float64
	ShapeArea     float64
	ShapeLeng     float64
}

// BuildTaxiFeatures assembles the taxi feature record for one zone.
func BuildTaxiFeatures(tf TimeFeatures, obs models.WeatherObservation, zone models.Zone) TaxiFeatures {
	return TaxiFeatures{
		PickupHour:    tf.PickupHour,
		DayOfWeek:     tf.DayOfWeek,
		IsWeekend:     tf.IsWeekend,
		IsHoliday:     tf.IsHoliday,
		IsPeakHour:    tf.IsPeakHour,
		Temp:          obs.Temp,
		Humidity:      obs.Humidity,
		WindSpeed:     obs.WindSpeed,
		FeelsLike:     obs.FeelsLike,
		CentroidLat:   zone.CentroidLat,
		CentroidLon:   zone.CentroidLon,
		PULocationID:  zone.ObjectID,
		WeatherOneHot: obs.OneHot(),
		ShapeArea:     zone.ShapeArea,
		ShapeLeng:     zone.ShapeLeng,
	}
}

// Vector returns the 24-element row in the exact order the trained model
// expects: pickup_hour, day_of_week, is_weekend, is_holiday, is_peak_hour,
// temp, humidity, wind_speed, feels_like, centroid_lat, centroid_lon,
// PULocationID, the ten weather_* indicators, Shape_Area, Shape_Leng.
func (f TaxiFeatures) Vector() []float64 {
	row := make([]float64, 0, 24)
	row = append(row,
		float64(f.PickupHour),
		float64(f.DayOfWeek),
		boolToFloat(f.IsWeekend),
		boolToFloat(f.IsHoliday),
		boolToFloat(f.IsPeakHour),
		f.Temp,
		f.Humidity,
		f.WindSpeed,
		f.FeelsLike,
		f.CentroidLat,
		f.CentroidLon,
		float64(f.PULocationID),
	)
	row = append(row, f.WeatherOneHot[:]...)
	row = append(row, f.ShapeArea, f.ShapeLeng)
	return row
}

// TempCategory is the ordered temperature bucket the subway model consumes
// as an integer code.
type TempCategory int

const (
	TempUndefined TempCategory = -1
	TempFreezing  TempCategory = 0
	TempCold      TempCategory = 1
	TempMild      TempCategory = 2
	TempWarm      TempCategory = 3
	TempHot       TempCategory = 4
)

// ClassifyTemp buckets a temperature: freezing(<0), cold(<10), mild(<20),
// warm(<30), hot otherwise. NaN yields TempUndefined; rows with an undefined
// category are excluded from inference rather than crashing the batch.
func ClassifyTemp(temp float64) TempCategory {
	switch {
	case math.IsNaN(temp):
		return TempUndefined
	case temp < 0:
		return TempFreezing
	case temp < 10:
		return TempCold
	case temp < 20:
		return TempMild
	case temp < 30:
		return TempWarm
	default:
		return TempHot
	}
}

// SubwayFeatures is one station's input record for the ridership model.
type SubwayFeatures struct {
	StationID    int
	Hour         int
	DayOfWeek    int
	Month        int
	HourSin      float64
	HourCos      float64
	DowSin       float64
	DowCos       float64
	MonthSin     float64
	MonthCos     float64
	IsRushHour   bool
	IsWeekend    bool
	IsHoliday    bool
	Temp         float64
	FeelsLike    float64
	Humidity     float64
	WindSpeed    float64
	HasRain      bool
	HasSnow      bool
	IsFreezing   bool
	IsHot        bool
	TempCategory TempCategory
}

// BuildSubwayFeatures assembles the ridership feature record for one station.
func BuildSubwayFeatures(tf TimeFeatures, obs models.WeatherObservation, station models.Station) SubwayFeatures {
	return SubwayFeatures{
		StationID:    station.ComplexID,
		Hour:         tf.Hour,
		DayOfWeek:    tf.DayOfWeek,
		Month:        tf.Month,
		HourSin:      math.Sin(2 * math.Pi * float64(tf.Hour) / 24),
		HourCos:      math.Cos(2 * math.Pi * float64(tf.Hour) / 24),
		DowSin:       math.Sin(2 * math.Pi * float64(tf.DayOfWeek) / 7),
		DowCos:       math.Cos(2 * math.Pi * float64(tf.DayOfWeek) / 7),
		MonthSin:     math.Sin(2 * math.Pi * float64(tf.Month) / 12),
		MonthCos:     math.Cos(2 * math.Pi * float64(tf.Month) / 12),
		IsRushHour:   peakHours[tf.Hour],
		IsWeekend:    tf.IsWeekend,
		IsHoliday:    tf.IsHoliday,
		Temp:         obs.Temp,
		FeelsLike:    obs.FeelsLike,
		Humidity:     obs.Humidity,
		WindSpeed:    obs.WindSpeed,
		HasRain:      obs.HasRain(),
		HasSnow:      obs.HasSnow(),
		IsFreezing:   obs.Temp < 0,
		IsHot:        obs.Temp > 30,
		TempCategory: ClassifyTemp(obs.Temp),
	}
}

// Vector returns the ridership model's input row: hour, day_of_week, month,
// hour_sin, hour_cos, dow_sin, dow_cos, month_sin, month_cos, is_rush_hour,
// is_weekend, is_holiday, temp, feels_like, humidity, wind_speed, has_rain,
// has_snow, is_freezing, is_hot, temp_category, station_complex_id.
func (f SubwayFeatures) Vector() []float64 {
	return []float64{
		float64(f.Hour),
		float64(f.DayOfWeek),
		float64(f.Month),
		f.HourSin,
		f.HourCos,
		f.DowSin,
		f.DowCos,
		f.MonthSin,
		f.MonthCos,
		boolToFloat(f.IsRushHour),
		boolToFloat(f.IsWeekend),
		boolToFloat(f.IsHoliday),
		f.Temp,
		f.FeelsLike,
		f.Humidity,
		f.WindSpeed,
		boolToFloat(f.HasRain),
		boolToFloat(f.HasSnow),
		boolToFloat(f.IsFreezing),
		boolToFloat(f.IsHot),
		float64(f.TempCategory),
		float64(f.StationID),
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
