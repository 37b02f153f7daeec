package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/paulmach/orb/geojson"
)

// Collection and file names for the optional nation-wide aggregate.
const (
	AggregateName = "zbe_spain_all"
	AggregateFile = "spain_all_zbe.geojson"
)

// Writer serializes feature collections under OutDir. Output is compact
// JSON with non-ASCII text preserved, one file per city plus the optional
// aggregate.
type Writer struct {
	OutDir string
}

// WriteCity writes the collection for one city to <OutDir>/<city>.geojson
// under the collection name zbe_<city>. Returns the written path.
func (w *Writer) WriteCity(city string, feats []*geojson.Feature) (string, error) {
	return w.write(city+".geojson", "zbe_"+city, feats)
}

// WriteAggregate writes the combined collection of every configured source.
func (w *Writer) WriteAggregate(feats []*geojson.Feature) (string, error) {
	return w.write(AggregateFile, AggregateName, feats)
}

func (w *Writer) write(filename, name string, feats []*geojson.Feature) (string, error) {
	fc := geojson.NewFeatureCollection()
	fc.Features = append(fc.Features, feats...)
	fc.ExtraMembers = geojson.Properties{"name": name}

	data, err := fc.MarshalJSON()
	if err != nil {
		return "", fmt.Errorf("failed encoding feature collection %s: %w", name, err)
	}

	if err := os.MkdirAll(w.OutDir, 0o755); err != nil {
		return "", fmt.Errorf("failed creating output directory: %w", err)
	}

	path := filepath.Join(w.OutDir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed writing %s: %w", path, err)
	}

	return path, nil
}
