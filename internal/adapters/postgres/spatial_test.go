package postgres

import (
	"strings"
	"testing"
)

func TestGeogRef(t *testing.T) {
	got := geogRef(1, 2)
	want := "ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography"
	if got != want {
		t.Errorf("geogRef(1, 2) = %q, want %q", got, want)
	}
}

func TestDWithinClause(t *testing.T) {
	got := dwithinClause(1, 2, 3)
	if !strings.HasPrefix(got, "ST_DWithin(location, ") {
		t.Errorf("unexpected clause: %q", got)
	}
	if !strings.Contains(got, "$3)") {
		t.Errorf("radius placeholder missing: %q", got)
	}
}

func TestDistanceExpr_LongitudeFirst(t *testing.T) {
	// ST_MakePoint takes lng before lat; mixing them up silently produces
	// distances to a point on the wrong side of the planet.
	got := distanceExpr(4, 5)
	if !strings.Contains(got, "ST_MakePoint($4, $5)") {
		t.Errorf("expected lng placeholder before lat: %q", got)
	}
}

func TestKnnOrder(t *testing.T) {
	got := knnOrder(1, 2)
	if !strings.HasPrefix(got, "location <-> ") {
		t.Errorf("unexpected order expression: %q", got)
	}
	if !strings.Contains(got, "::geography") {
		t.Errorf("KNN must compare geographies for spheroid meters: %q", got)
	}
}

func TestWithinClause(t *testing.T) {
	got := withinClause(1)
	want := "ST_Within(location::geometry, ST_MakeValid(ST_GeomFromText($1, 4326)))"
	if got != want {
		t.Errorf("withinClause(1) = %q, want %q", got, want)
	}
}
