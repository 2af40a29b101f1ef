// Package dataset loads the read-only reference tables the pipeline depends
// on: the zone list, subway stations, the station-to-zone mapping, and the
// historical percentile bands for both models. Everything is loaded once at
// startup and never mutated while serving.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/iwsanren/comp47360-team9/config"
	"github.com/iwsanren/comp47360-team9/models"
)

// Store holds all reference data for the serving process.
type Store struct {
	Zones       []models.Zone
	Stations    []models.Station
	StationZone map[int]int // station complex id -> PULocationID
	TaxiBands   map[models.BandKey]models.PercentileBand
	SubwayBands map[models.BandKey]models.PercentileBand
}

// TaxiBand returns the taxi percentile band for the slice, or nil when no
// historical row exists.
func (s *Store) TaxiBand(zoneID, hour, day int) *models.PercentileBand {
	if band, ok := s.TaxiBands[models.BandKey{ZoneID: zoneID, Hour: hour, DayOfWeek: day}]; ok {
		return &band
	}
	return nil
}

// SubwayBand returns the subway percentile band for the slice, or nil.
func (s *Store) SubwayBand(zoneID, hour, day int) *models.PercentileBand {
	if band, ok := s.SubwayBands[models.BandKey{ZoneID: zoneID, Hour: hour, DayOfWeek: day}]; ok {
		return &band
	}
	return nil
}

// Load reads every reference table. Any missing or malformed file is a
// startup data-integrity failure: the caller must keep the pipeline offline
// and report unhealthy rather than serve partial data.
func Load(cfg config.DataConfig) (*Store, error) {
	zones, err := loadZones(cfg.ZonesPath)
	if err != nil {
		return nil, fmt.Errorf("load zones: %w", err)
	}
	stations, err := loadStations(cfg.StationsPath)
	if err != nil {
		return nil, fmt.Errorf("load stations: %w", err)
	}
	stationZone, err := loadStationZone(cfg.StationZonePath)
	if err != nil {
		return nil, fmt.Errorf("load station-zone mapping: %w", err)
	}
	taxiBands, err := loadBands(cfg.TaxiStatsPath, true)
	if err != nil {
		return nil, fmt.Errorf("load taxi stats: %w", err)
	}
	subwayBands, err := loadBands(cfg.SubwayStatsPath, false)
	if err != nil {
		return nil, fmt.Errorf("load subway stats: %w", err)
	}

	return &Store{
		Zones:       zones,
		Stations:    stations,
		StationZone: stationZone,
		TaxiBands:   taxiBands,
		SubwayBands: subwayBands,
	}, nil
}

// table is one parsed CSV with header-indexed column access.
type table struct {
	cols map[string]int
	rows [][]string
}

func readTable(path string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[name] = i
	}

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, rec)
	}
	return &table{cols: cols, rows: rows}, nil
}

func (t *table) str(row []string, col string) (string, error) {
	i, ok := t.cols[col]
	if !ok || i >= len(row) {
		return "", fmt.Errorf("missing column %q", col)
	}
	return row[i], nil
}

func (t *table) intVal(row []string, col string) (int, error) {
	s, err := t.str(row, col)
	if err != nil {
		return 0, err
	}
	// Some prep scripts emit integer ids as floats ("42.0").
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", col, err)
	}
	return int(f), nil
}

func (t *table) floatVal(row []string, col string) (float64, error) {
	s, err := t.str(row, col)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", col, err)
	}
	return f, nil
}

func loadZones(path string) ([]models.Zone, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	var zones []models.Zone
	for _, row := range t.rows {
		id, err := t.intVal(row, "OBJECTID")
		if err != nil {
			return nil, err
		}
		lat, err := t.floatVal(row, "centroid_lat")
		if err != nil {
			return nil, err
		}
		lon, err := t.floatVal(row, "centroid_lon")
		if err != nil {
			return nil, err
		}
		area, err := t.floatVal(row, "Shape_Area")
		if err != nil {
			return nil, err
		}
		leng, err := t.floatVal(row, "Shape_Leng")
		if err != nil {
			return nil, err
		}
		name, _ := t.str(row, "zone")
		borough, _ := t.str(row, "borough")
		geom, _ := t.str(row, "geometry")
		zones = append(zones, models.Zone{
			ObjectID:    id,
			Name:        name,
			Borough:     borough,
			CentroidLat: lat,
			CentroidLon: lon,
			ShapeArea:   area,
			ShapeLeng:   leng,
			Geometry:    geom,
		})
	}
	if len(zones) == 0 {
		return nil, fmt.Errorf("zone table %s is empty", path)
	}
	return zones, nil
}

func loadStations(path string) ([]models.Station, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	var stations []models.Station
	for _, row := range t.rows {
		id, err := t.intVal(row, "station_complex_id")
		if err != nil {
			return nil, err
		}
		name, _ := t.str(row, "name")
		stations = append(stations, models.Station{ComplexID: id, Name: name})
	}
	return stations, nil
}

func loadStationZone(path string) (map[int]int, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	mapping := make(map[int]int, len(t.rows))
	for _, row := range t.rows {
		station, err := t.intVal(row, "station_complex_id")
		if err != nil {
			return nil, err
		}
		zone, err := t.intVal(row, "PULocationID")
		if err != nil {
			return nil, err
		}
		mapping[station] = zone
	}
	return mapping, nil
}

func loadBands(path string, withMinMax bool) (map[models.BandKey]models.PercentileBand, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, err
	}
	bands := make(map[models.BandKey]models.PercentileBand, len(t.rows))
	for _, row := range t.rows {
		band := models.PercentileBand{HasMinMax: withMinMax}
		if band.ZoneID, err = t.intVal(row, "PULocationID"); err != nil {
			return nil, err
		}
		if band.Hour, err = t.intVal(row, "hour"); err != nil {
			return nil, err
		}
		if band.DayOfWeek, err = t.intVal(row, "day_of_week"); err != nil {
			return nil, err
		}
		if band.P10, err = t.floatVal(row, "p10"); err != nil {
			return nil, err
		}
		if band.P25, err = t.floatVal(row, "p25"); err != nil {
			return nil, err
		}
		if band.P50, err = t.floatVal(row, "p50"); err != nil {
			return nil, err
		}
		if band.P75, err = t.floatVal(row, "p75"); err != nil {
			return nil, err
		}
		if band.P90, err = t.floatVal(row, "p90"); err != nil {
			return nil, err
		}
		if withMinMax {
			if band.Min, err = t.floatVal(row, "min"); err != nil {
				return nil, err
			}
			if band.Max, err = t.floatVal(row, "max"); err != nil {
				return nil, err
			}
		}
		key := models.BandKey{ZoneID: band.ZoneID, Hour: band.Hour, DayOfWeek: band.DayOfWeek}
		bands[key] = band
	}
	return bands, nil
}
