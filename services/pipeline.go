package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"
	_ "time/tzdata" // New York time must resolve even in scratch containers

	"github.com/iwsanren/comp47360-team9/dataset"
	"github.com/iwsanren/comp47360-team9/geometry"
	"github.com/iwsanren/comp47360-team9/logging"
	"github.com/iwsanren/comp47360-team9/mlmodel"
	"github.com/iwsanren/comp47360-team9/models"
)

// WeatherSource provides the observation for a request: live, or matched
// from the hourly forecast by exact timestamp.
type WeatherSource interface {
	Current(ctx context.Context) (models.WeatherObservation, error)
	At(ctx context.Context, ts int64) (models.WeatherObservation, error)
}

// Pipeline is the request-scoped busyness fusion chain: weather fetch,
// feature assembly, model invocation, correction, classification, fusion,
// and response assembly. All of its state is read-only reference data built
// once at startup; a Pipeline is safe for concurrent requests.
type Pipeline struct {
	store   *dataset.Store
	taxi    mlmodel.Predictor
	subway  mlmodel.Predictor
	weather WeatherSource
	logger  *slog.Logger
	loc     *time.Location
}

func NewPipeline(store *dataset.Store, taxi, subway mlmodel.Predictor, weather WeatherSource, logger *slog.Logger) (*Pipeline, error) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return nil, fmt.Errorf("load timezone: %w", err)
	}
	return &Pipeline{
		store:   store,
		taxi:    taxi,
		subway:  subway,
		weather: weather,
		logger:  logger,
		loc:     loc,
	}, nil
}

// Ready reports whether the reference data and both model clients are
// available. When false the pipeline must not be invoked. Safe on a nil
// receiver so a failed startup load can still be introspected.
func (p *Pipeline) Ready() bool {
	return p != nil && p.store != nil && p.taxi != nil && p.subway != nil
}

// ZonesCount returns the number of loaded zones, for health introspection.
func (p *Pipeline) ZonesCount() int {
	if p == nil || p.store == nil {
		return 0
	}
	return len(p.store.Zones)
}

// PredictAll runs the full fusion pipeline for every zone. ts selects a
// forecast timestamp; nil means "now". Weather failures abort the request;
// per-zone taxi failures and a failed subway batch are isolated and reported
// as substituted or absent values.
func (p *Pipeline) PredictAll(ctx context.Context, ts *int64) (*models.FeatureCollection, error) {
	start := time.Now()
	defer func() {
		pipelineDuration.Observe(time.Since(start).Seconds())
	}()

	log := logging.FromContext(ctx, p.logger)

	var (
		obs       models.WeatherObservation
		effective time.Time
		err       error
	)
	if ts != nil {
		obs, err = p.weather.At(ctx, *ts)
		effective = time.Unix(*ts, 0).In(p.loc)
	} else {
		obs, err = p.weather.Current(ctx)
		effective = time.Now().In(p.loc)
	}
	if err != nil {
		weatherFetchFailures.Inc()
		log.Error("weather fetch failed", "error", err)
		return nil, err
	}

	tf := BuildTimeFeatures(effective)

	subwaySums, subwayOK := p.predictSubway(ctx, log, tf, obs)

	features := make([]models.Feature, 0, len(p.store.Zones))
	for _, zone := range p.store.Zones {
		features = append(features, p.buildFeature(ctx, log, tf, obs, zone, subwaySums, subwayOK))
		zonePredictions.Inc()
	}

	return &models.FeatureCollection{
		Type: "FeatureCollection",
		Properties: models.CollectionProps{
			Timestamp: effective.Format("2006-01-02 15:04"),
			Weather:   obs.Condition,
			IsHoliday: tf.IsHoliday,
		},
		Features: features,
	}, nil
}

func (p *Pipeline) buildFeature(ctx context.Context, log *slog.Logger, tf TimeFeatures, obs models.WeatherObservation, zone models.Zone, subwaySums map[int]float64, subwayOK bool) models.Feature {
	raw := p.predictTaxiZone(ctx, log, tf, obs, zone)
	taxiBand := p.store.TaxiBand(zone.ObjectID, tf.PickupHour, tf.DayOfWeek)
	corrected := CorrectTaxi(raw, taxiBand)
	taxiLevel := Classify(corrected, taxiBand)

	subwayLevel := models.NoData
	subwaySum, haveSubway := 0.0, false
	if subwayOK {
		if sum, ok := subwaySums[zone.ObjectID]; ok {
			subwaySum, haveSubway = sum, true
			subwayBand := p.store.SubwayBand(zone.ObjectID, tf.Hour, tf.DayOfWeek)
			subwayLevel = Classify(sum, subwayBand)
		}
	}

	combinedScore, combinedLevel := Fuse(taxiLevel, subwayLevel)

	// The normalisation reference was computed over the same weighted blend
	// of historical taxi and subway volumes.
	combinedRaw := corrected
	if haveSubway {
		combinedRaw = subwayWeight*subwaySum + taxiWeight*corrected
	}

	props := models.ZoneProps{
		PULocationID:       zone.ObjectID,
		Zone:               zone.Name,
		Borough:            zone.Borough,
		CentroidLat:        zone.CentroidLat,
		CentroidLon:        zone.CentroidLon,
		ShapeArea:          zone.ShapeArea,
		ShapeLeng:          zone.ShapeLeng,
		TaxiLevel:          taxiLevel.Label(),
		SubwayLevel:        subwayLevel.Label(),
		CombinedScore:      roundTo(combinedScore, 2),
		CombinedLevel:      combinedLevel.Label(),
		NormalisedBusyness: NormalisedBusyness(combinedRaw, taxiBand),
	}
	if taxiLevel != models.NoData {
		score := taxiLevel.Score()
		props.TaxiScore = &score
	}
	if subwayLevel != models.NoData {
		score := subwayLevel.Score()
		props.SubwayScore = &score
	}

	return models.Feature{
		Type:       "Feature",
		Properties: props,
		Geometry:   geometry.Decode(zone.Geometry),
	}
}

// predictTaxiZone invokes the taxi model for a single zone. A failed call is
// isolated: the zone gets a substituted 0.0 and the batch continues.
func (p *Pipeline) predictTaxiZone(ctx context.Context, log *slog.Logger, tf TimeFeatures, obs models.WeatherObservation, zone models.Zone) float64 {
	row := BuildTaxiFeatures(tf, obs, zone).Vector()
	preds, err := p.taxi.Predict(ctx, [][]float64{row})
	if err != nil {
		taxiInferenceFailures.Inc()
		log.Warn("taxi inference failed, substituting 0.0",
			"zone_id", zone.ObjectID, "error", err)
		return 0.0
	}
	return preds[0]
}

// predictSubway runs the ridership model over every station and aggregates
// predictions per zone by summing. Returns ok=false when the subway side
// produced nothing; affected zones report their subway level as No Data.
func (p *Pipeline) predictSubway(ctx context.Context, log *slog.Logger, tf TimeFeatures, obs models.WeatherObservation) (map[int]float64, bool) {
	rows := make([][]float64, 0, len(p.store.Stations))
	stations := make([]models.Station, 0, len(p.store.Stations))
	for _, station := range p.store.Stations {
		feats := BuildSubwayFeatures(tf, obs, station)
		if feats.TempCategory == TempUndefined {
			log.Warn("excluding station row with undefined temp category",
				"station_id", station.ComplexID)
			continue
		}
		rows = append(rows, feats.Vector())
		stations = append(stations, station)
	}
	if len(rows) == 0 {
		return nil, false
	}

	preds, err := p.subway.Predict(ctx, rows)
	if err != nil {
		subwayInferenceFailures.Inc()
		log.Warn("subway inference failed, levels reported as No Data", "error", err)
		return nil, false
	}

	sums := make(map[int]float64)
	for i, station := range stations {
		zoneID, ok := p.store.StationZone[station.ComplexID]
		if !ok {
			log.Debug("station has no zone mapping", "station_id", station.ComplexID)
			continue
		}
		sums[zoneID] += preds[i]
	}
	return sums, true
}

func roundTo(v float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(v*shift) / shift
}
