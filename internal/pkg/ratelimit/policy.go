package ratelimit

import "time"

// Tier is a request budget over a window.
type Tier struct {
	Limit  int
	Window time.Duration
}

// The built-in tiers. Spatial queries are the most expensive thing the API
// does, so they get the tightest anonymous budget; auth endpoints are
// throttled hard to slow down credential stuffing.
var (
	StandardTier  = Tier{Limit: 100, Window: time.Minute}
	IntensiveTier = Tier{Limit: 20, Window: time.Minute}
	WriteTier     = Tier{Limit: 30, Window: time.Minute}
	AuthTier      = Tier{Limit: 5, Window: time.Minute}
)

// Policy selects a tier for a request. Resolution order: exact path+method,
// exact path, write tier for mutating methods, then the default.
// Authenticated users may get a higher ceiling through Authenticated
// overrides, checked before the anonymous tables.
type Policy struct {
	Default       Tier
	Paths         map[string]Tier // keyed by path or "path:METHOD"
	Write         *Tier
	Authenticated map[string]Tier
}

// DefaultPolicy returns the tier table used by the API server.
func DefaultPolicy() Policy {
	return Policy{
		Default: StandardTier,
		Paths: map[string]Tier{
			"/v1/points/nearby":  IntensiveTier,
			"/v1/points/within":  IntensiveTier,
			"/v1/points/nearest": IntensiveTier,
			"/v1/auth/token":     AuthTier,
			"/v1/auth/register":  AuthTier,
		},
		Write: &WriteTier,
		Authenticated: map[string]Tier{
			"/v1/points/nearby": {Limit: 200, Window: time.Minute},
			"/v1/points/within": {Limit: 100, Window: time.Minute},
			"/v1/points":        {Limit: 100, Window: time.Minute},
		},
	}
}

// TierFor resolves the tier for a path and method.
func (p Policy) TierFor(path, method string, authenticated bool) Tier {
	if authenticated {
		if t, ok := p.Authenticated[path+":"+method]; ok {
			return t
		}
		if t, ok := p.Authenticated[path]; ok {
			return t
		}
	}

	if t, ok := p.Paths[path+":"+method]; ok {
		return t
	}
	if t, ok := p.Paths[path]; ok {
		return t
	}

	if p.Write != nil && (method == "POST" || method == "PUT" || method == "DELETE") {
		return *p.Write
	}

	return p.Default
}
