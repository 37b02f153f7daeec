package export

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/ConsultoriaImpulso/ZBE/internal/datex"
	"github.com/ConsultoriaImpulso/ZBE/internal/geometry"
)

// Property keys expected by the downstream mapping and BI dashboards.
const (
	PropertyName = "ZONAS"
	PropertyID   = "ZBE_ID"
	PropertyCity = "CITY"
)

// Feature assembles one zone into a GeoJSON feature. Flat extraction maps
// to a Polygon with a single ring; grouped extraction maps to a
// MultiPolygon with one single-ring polygon per corners block. Rings that
// cannot be built (fewer than 3 points) are dropped, and a zone left with
// no rings yields no feature (ok=false).
func Feature(zone datex.Zone, city string, mode datex.Mode, order bool) (*geojson.Feature, bool) {
	var rings []orb.Ring
	for _, raw := range zone.Rings {
		if ring, ok := geometry.BuildRing(raw, order); ok {
			rings = append(rings, ring)
		}
	}

	if len(rings) == 0 {
		return nil, false
	}

	var geom orb.Geometry
	if mode == datex.ModeGrouped {
		mp := make(orb.MultiPolygon, 0, len(rings))
		for _, ring := range rings {
			mp = append(mp, orb.Polygon{ring})
		}
		geom = mp
	} else {
		geom = orb.Polygon{rings[0]}
	}

	f := geojson.NewFeature(geom)
	f.Properties[PropertyName] = zone.Name
	f.Properties[PropertyID] = zone.ID
	f.Properties[PropertyCity] = city

	return f, true
}

// Features assembles every zone that produced at least one valid ring,
// preserving document order.
func Features(zones []datex.Zone, city string, mode datex.Mode, order bool) []*geojson.Feature {
	var feats []*geojson.Feature
	for _, zone := range zones {
		if f, ok := Feature(zone, city, mode, order); ok {
			feats = append(feats, f)
		}
	}

	return feats
}
