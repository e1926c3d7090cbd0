package domain

// GeoPoint represents a geographic coordinate (WGS 84).
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// GeoJSONPoint is the GeoJSON representation of a point geometry.
// Coordinates are [lng, lat] per the GeoJSON convention, longitude first.
type GeoJSONPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

// GeoJSON converts the coordinate pair into its GeoJSON shape.
func (p GeoPoint) GeoJSON() GeoJSONPoint {
	return GeoJSONPoint{Type: "Point", Coordinates: [2]float64{p.Lng, p.Lat}}
}
