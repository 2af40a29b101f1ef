package models

// Zone is a fixed taxi-pickup area with static geometry and centroid metadata.
// The zone list is loaded once at startup and never mutated while serving.
type Zone struct {
	ObjectID    int     `json:"OBJECTID"`
	Name        string  `json:"zone"`
	Borough     string  `json:"borough"`
	CentroidLat float64 `json:"centroid_lat"`
	CentroidLon float64 `json:"centroid_lon"`
	ShapeArea   float64 `json:"Shape_Area"`
	ShapeLeng   float64 `json:"Shape_Leng"`
	Geometry    string  `json:"geometry"` // raw WKT, decoded at response time
}
