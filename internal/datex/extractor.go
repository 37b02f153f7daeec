// Package datex extracts controlled-zone geometry from DATEX II
// ControlledZonePublication documents.
package datex

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/paulmach/orb"
)

// Mode selects how a zone's coordinate points are assembled into rings.
type Mode int

const (
	// ModeFlat collects every coordinate pair under a zone, in document
	// order, into a single ring.
	ModeFlat Mode = iota

	// ModeGrouped builds one ring per openlrPolygonCorners block.
	// Concatenating the blocks of a multi-ring zone into one ring produces
	// self-intersecting polygons, which is what this mode exists to avoid.
	ModeGrouped
)

func (m Mode) String() string {
	if m == ModeGrouped {
		return "grouped"
	}

	return "flat"
}

// ParseMode maps a configuration string onto a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "flat":
		return ModeFlat, nil
	case "grouped":
		return ModeGrouped, nil
	default:
		return ModeFlat, fmt.Errorf("unknown extraction mode %q", s)
	}
}

// Zone is one controlled zone as found in a publication. Rings holds the
// raw coordinate runs in document order; they are neither ordered nor
// closed yet.
type Zone struct {
	ID    string
	Name  string
	Rings [][]orb.Point
}

// Extractor pulls zones out of publication XML. City feeds the legacy
// identifier fallback and is otherwise unused.
type Extractor struct {
	Mode   Mode
	City   string
	Logger *slog.Logger
}

func (e *Extractor) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}

	return e.Logger
}

// Extract parses xmlBytes and returns every controlled zone in document
// order. Malformed XML is a hard error; malformed individual coordinate
// pairs are skipped. Zones may come back with zero rings.
func (e *Extractor) Extract(xmlBytes []byte) ([]Zone, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(xmlBytes); err != nil {
		return nil, fmt.Errorf("failed parsing publication XML: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, errors.New("publication XML has no root element")
	}

	var zones []Zone
	for _, cz := range findAll(root, "controlledZone") {
		zone := Zone{ID: e.resolveID(cz)}
		zone.Name = e.resolveName(cz, zone.ID)

		switch e.Mode {
		case ModeGrouped:
			for _, corners := range findAll(cz, "openlrPolygonCorners") {
				if ring := e.points(corners); len(ring) > 0 {
					zone.Rings = append(zone.Rings, ring)
				}
			}
		default:
			if ring := e.points(cz); len(ring) > 0 {
				zone.Rings = append(zone.Rings, ring)
			}
		}

		zones = append(zones, zone)
	}

	return zones, nil
}

// resolveID finds a stable identifier for the zone element. Preference is
// the id attribute. Some older publications instead carry the identifier
// in an arbitrarily named attribute whose value embeds the city name; that
// fallback is kept exactly as observed. Everything else is "unknown".
func (e *Extractor) resolveID(cz *etree.Element) string {
	for _, attr := range cz.Attr {
		if attr.Key == "id" && attr.Value != "" {
			return attr.Value
		}
	}

	if e.City != "" {
		city := strings.ToLower(e.City)
		for _, attr := range cz.Attr {
			if strings.Contains(strings.ToLower(attr.Value), city) {
				return attr.Value
			}
		}
	}

	return "unknown"
}

func (e *Extractor) resolveName(cz *etree.Element, fallback string) string {
	if names := findAll(cz, "name"); len(names) > 0 {
		if s := text(names[0]); s != "" {
			return s
		}
	}

	return fallback
}

// points collects the coordinate pairs reachable under el as GeoJSON
// ordered [lon, lat] points. Pairs missing a component or failing float
// conversion are skipped without failing the zone.
func (e *Extractor) points(el *etree.Element) []orb.Point {
	var ring []orb.Point
	for _, c := range findAll(el, "openlrCoordinates") {
		latEl := findChild(c, "latitude")
		lonEl := findChild(c, "longitude")
		if latEl == nil || lonEl == nil {
			e.logger().Debug("skipping coordinate pair with missing component")
			continue
		}

		lon, lonErr := strconv.ParseFloat(text(lonEl), 64)
		lat, latErr := strconv.ParseFloat(text(latEl), 64)
		if lonErr != nil || latErr != nil {
			e.logger().Debug("skipping unparsable coordinate pair",
				"longitude", text(lonEl), "latitude", text(latEl))
			continue
		}

		ring = append(ring, orb.Point{lon, lat})
	}

	return ring
}
