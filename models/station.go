package models

// Station is a subway station complex whose predicted ridership contributes
// to the busyness aggregate of the zone it is mapped to.
type Station struct {
	ComplexID int    `json:"station_complex_id"`
	Name      string `json:"name"`
}

// StationZone maps one station complex to its taxi zone.
type StationZone struct {
	ComplexID    int `json:"station_complex_id"`
	PULocationID int `json:"PULocationID"`
}
