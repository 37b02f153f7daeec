// Package export runs the fetch-extract-assemble-write pipeline that
// turns DGT controlled-zone publications into GeoJSON files.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/paulmach/orb/geojson"

	"github.com/ConsultoriaImpulso/ZBE/internal/config"
	"github.com/ConsultoriaImpulso/ZBE/internal/datex"
	"github.com/ConsultoriaImpulso/ZBE/internal/dgt"
	"github.com/ConsultoriaImpulso/ZBE/internal/store"
)

type Service struct {
	Client *dgt.Client
	Writer *Writer
	Logger *slog.Logger
	Mode   datex.Mode

	// Store is optional; when set, every run also upserts the exported
	// zones into Postgres.
	Store *store.Store

	// NoReorder skips the centroid-angle ordering pass. The default
	// (reorder) matches what consumers of these files have always seen.
	NoReorder bool
}

func New(c *dgt.Client, w *Writer) *Service {
	return &Service{Client: c, Writer: w}
}

func (s *Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}

	return s.Logger
}

type CityResult struct {
	City         string `json:"city"`
	Path         string `json:"path"`
	FeatureCount int    `json:"feature_count"`
}

type RunResult struct {
	Cities        []CityResult `json:"cities"`
	AggregatePath string       `json:"aggregate_path,omitempty"`
	CompletedAt   time.Time    `json:"completed_at"`
}

// Run processes every source in order, writing one file per city. Sources
// after the first failing one are not attempted. When more than one
// source is configured the accumulated features of all cities are also
// written as the aggregate collection.
func (s *Service) Run(ctx context.Context, sources []config.Source) (RunResult, error) {
	var result RunResult
	var all []*geojson.Feature

	for _, src := range sources {
		feats, path, err := s.exportSource(ctx, src)
		if err != nil {
			return RunResult{}, err
		}

		result.Cities = append(result.Cities, CityResult{
			City:         src.City,
			Path:         path,
			FeatureCount: len(feats),
		})
		all = append(all, feats...)
	}

	if len(sources) > 1 {
		path, err := s.Writer.WriteAggregate(all)
		if err != nil {
			return RunResult{}, fmt.Errorf("failed writing aggregate collection: %w", err)
		}
		result.AggregatePath = path
	}

	result.CompletedAt = time.Now().UTC()
	s.logger().Info("geojson export completed",
		"sources", len(sources), "features", len(all))

	return result, nil
}

func (s *Service) exportSource(ctx context.Context, src config.Source) ([]*geojson.Feature, string, error) {
	raw, err := s.Client.Fetch(src.URL)
	if err != nil {
		return nil, "", fmt.Errorf("failed fetching %s publication: %w", src.City, err)
	}

	extractor := &datex.Extractor{Mode: s.Mode, City: src.City, Logger: s.Logger}
	zones, err := extractor.Extract(raw)
	if err != nil {
		return nil, "", fmt.Errorf("failed extracting %s zones: %w", src.City, err)
	}

	feats := Features(zones, src.City, s.Mode, !s.NoReorder)
	s.logger().Info("extracted zones",
		"city", src.City, "zones", len(zones), "features", len(feats))

	path, err := s.Writer.WriteCity(src.City, feats)
	if err != nil {
		return nil, "", fmt.Errorf("failed writing %s collection: %w", src.City, err)
	}

	if s.Store != nil {
		records, err := zoneRecords(src.City, feats)
		if err != nil {
			return nil, "", err
		}
		if err := s.Store.UpsertZonesTx(ctx, records); err != nil {
			return nil, "", fmt.Errorf("failed persisting %s zones: %w", src.City, err)
		}
	}

	return feats, path, nil
}

func zoneRecords(city string, feats []*geojson.Feature) ([]store.ZoneRecord, error) {
	records := make([]store.ZoneRecord, 0, len(feats))
	for _, f := range feats {
		geom, err := geojson.NewGeometry(f.Geometry).MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("failed encoding geometry for storage: %w", err)
		}

		records = append(records, store.ZoneRecord{
			ZBEID:    fmt.Sprint(f.Properties[PropertyID]),
			Name:     fmt.Sprint(f.Properties[PropertyName]),
			City:     city,
			Geometry: geom,
		})
	}

	return records, nil
}
