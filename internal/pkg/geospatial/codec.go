package geospatial

import (
	"fmt"
	"strings"

	"github.com/waheedridwan/geopoints/internal/core/domain"
)

// Spatial reference system identifiers used throughout the API.
const (
	SRIDWGS84       = 4326 // degree-based global standard, storage CRS
	SRIDWebMercator = 3857 // planar projection, approximate meter math
)

// NewPoint validates a coordinate pair and returns the domain geometry.
// Latitude must be in [-90, 90] and longitude in [-180, 180].
func NewPoint(lat, lng float64) (domain.GeoPoint, error) {
	if lat < -90 || lat > 90 {
		return domain.GeoPoint{}, domain.NewValidation("latitude must be between -90 and 90, got %v", lat)
	}
	if lng < -180 || lng > 180 {
		return domain.GeoPoint{}, domain.NewValidation("longitude must be between -180 and 180, got %v", lng)
	}
	return domain.GeoPoint{Lat: lat, Lng: lng}, nil
}

// PointWKT renders a point as Well-Known Text. Longitude comes first,
// matching the GeoJSON axis order.
func PointWKT(p domain.GeoPoint) string {
	return fmt.Sprintf("POINT(%v %v)", p.Lng, p.Lat)
}

// ValidatePolygonWKT performs a cheap sanity check on a WKT polygon before
// it is handed to the store: correct marker, balanced parentheses, and at
// least four coordinate pairs in the outer ring (a closed triangle).
// The store still normalizes the geometry (minor self-intersections are
// tolerated via ST_MakeValid); this check only rejects obvious garbage.
func ValidatePolygonWKT(wkt string) error {
	trimmed := strings.TrimSpace(wkt)
	upper := strings.ToUpper(trimmed)
	if !strings.HasPrefix(upper, "POLYGON") {
		return domain.NewBadRequest("invalid polygon WKT format")
	}

	depth := 0
	for _, r := range trimmed {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return domain.NewBadRequest("invalid polygon WKT: unbalanced parentheses")
			}
		}
	}
	if depth != 0 {
		return domain.NewBadRequest("invalid polygon WKT: unbalanced parentheses")
	}

	open := strings.Index(trimmed, "((")
	end := strings.Index(trimmed, ")")
	if open < 0 || end < open {
		return domain.NewBadRequest("invalid polygon WKT: missing ring")
	}
	ring := trimmed[open+2 : end]
	pairs := strings.Split(ring, ",")
	if len(pairs) < 4 {
		return domain.NewBadRequest("invalid polygon WKT: outer ring needs at least 4 coordinate pairs")
	}
	for _, pair := range pairs {
		fields := strings.Fields(strings.TrimSpace(pair))
		if len(fields) != 2 {
			return domain.NewBadRequest("invalid polygon WKT: malformed coordinate pair %q", pair)
		}
		var lng, lat float64
		if _, err := fmt.Sscanf(fields[0]+" "+fields[1], "%f %f", &lng, &lat); err != nil {
			return domain.NewBadRequest("invalid polygon WKT: non-numeric coordinate in %q", pair)
		}
	}
	return nil
}
