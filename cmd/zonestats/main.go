// Command zonestats computes the historical percentile bands the API uses to
// classify predictions. It reads a CSV of hourly observations
// (PULocationID, hour, day_of_week, count) and writes one band row per
// (zone, hour, day-of-week) slice: p10/p25/p50/p75/p90 plus min/max.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"
)

type sliceKey struct {
	ZoneID    int
	Hour      int
	DayOfWeek int
}

func main() {
	input := flag.String("input", "", "hourly observations CSV (PULocationID,hour,day_of_week,count)")
	output := flag.String("output", "", "destination stats CSV")
	flag.Parse()

	if *input == "" || *output == "" {
		flag.Usage()
		os.Exit(2)
	}

	groups, err := readObservations(*input)
	if err != nil {
		log.Fatalf("read observations: %v", err)
	}
	if err := writeBands(*output, groups); err != nil {
		log.Fatalf("write bands: %v", err)
	}
	log.Printf("wrote %d band rows to %s", len(groups), *output)
}

func readObservations(path string) (map[sliceKey][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, required := range []string{"PULocationID", "hour", "day_of_week", "count"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	groups := make(map[sliceKey][]float64)
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		zone, err := strconv.Atoi(rec[col["PULocationID"]])
		if err != nil {
			return nil, fmt.Errorf("PULocationID: %w", err)
		}
		hour, err := strconv.Atoi(rec[col["hour"]])
		if err != nil {
			return nil, fmt.Errorf("hour: %w", err)
		}
		day, err := strconv.Atoi(rec[col["day_of_week"]])
		if err != nil {
			return nil, fmt.Errorf("day_of_week: %w", err)
		}
		count, err := strconv.ParseFloat(rec[col["count"]], 64)
		if err != nil {
			return nil, fmt.Errorf("count: %w", err)
		}
		key := sliceKey{ZoneID: zone, Hour: hour, DayOfWeek: day}
		groups[key] = append(groups[key], count)
	}
	return groups, nil
}

func writeBands(path string, groups map[sliceKey][]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		"PULocationID", "hour", "day_of_week",
		"p10", "p25", "p50", "p75", "p90", "min", "max",
	}); err != nil {
		return err
	}

	keys := make([]sliceKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.ZoneID != b.ZoneID {
			return a.ZoneID < b.ZoneID
		}
		if a.DayOfWeek != b.DayOfWeek {
			return a.DayOfWeek < b.DayOfWeek
		}
		return a.Hour < b.Hour
	})

	for _, key := range keys {
		values := groups[key]
		sort.Float64s(values)

		row := []string{
			strconv.Itoa(key.ZoneID),
			strconv.Itoa(key.Hour),
			strconv.Itoa(key.DayOfWeek),
		}
		for _, p := range []float64{0.10, 0.25, 0.50, 0.75, 0.90} {
			q := stat.Quantile(p, stat.Empirical, values, nil)
			row = append(row, strconv.FormatFloat(q, 'f', 4, 64))
		}
		row = append(row,
			strconv.FormatFloat(values[0], 'f', 4, 64),
			strconv.FormatFloat(values[len(values)-1], 'f', 4, 64),
		)
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
