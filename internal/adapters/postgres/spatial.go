package postgres

import "fmt"

// SQL fragment builders for the PostGIS expressions shared by the spatial
// queries. All geometry lives in WGS84 (SRID 4326); distance math runs on
// the geography type so results come back in spheroid meters.

// geogRef builds the parameterized reference-point expression. PostGIS wants
// longitude first in ST_MakePoint.
func geogRef(lngIdx, latIdx int) string {
	return fmt.Sprintf("ST_SetSRID(ST_MakePoint($%d, $%d), 4326)::geography", lngIdx, latIdx)
}

// dwithinClause filters rows to radius meters of the reference point. The
// GIST index on location satisfies this without a scan.
func dwithinClause(lngIdx, latIdx, radiusIdx int) string {
	return fmt.Sprintf("ST_DWithin(location, %s, $%d)", geogRef(lngIdx, latIdx), radiusIdx)
}

// distanceExpr computes spheroid meters from the reference point.
func distanceExpr(lngIdx, latIdx int) string {
	return fmt.Sprintf("ST_Distance(location, %s)", geogRef(lngIdx, latIdx))
}

// knnOrder orders rows by geography distance using the index-backed <->
// operator. Callers add their own tiebreaker.
func knnOrder(lngIdx, latIdx int) string {
	return fmt.Sprintf("location <-> %s", geogRef(lngIdx, latIdx))
}

// withinClause keeps rows whose location falls inside the WKT polygon.
// ST_MakeValid repairs self-intersections instead of returning nothing.
func withinClause(wktIdx int) string {
	return fmt.Sprintf("ST_Within(location::geometry, ST_MakeValid(ST_GeomFromText($%d, 4326)))", wktIdx)
}
