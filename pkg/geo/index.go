package geo

import (
	"math"
	"sync"

	"github.com/dhconnelly/rtreego"
)

const (
	indexTolerance = 0.01
	minChildren    = 2
	maxChildren    = 8
	dimensions     = 2
)

// IndexedPoint is an identified coordinate stored in an Index.
type IndexedPoint struct {
	ID string
	Point
}

type spatialItem struct {
	*IndexedPoint
	rect *rtreego.Rect
}

func (si *spatialItem) Bounds() *rtreego.Rect {
	return si.rect
}

// Index is a thread-safe R-tree over identified points. The feed uses it to
// pre-select radius candidates by bounding box before confirming each hit
// with an exact haversine distance.
type Index struct {
	mu   sync.RWMutex
	tree *rtreego.Rtree
}

// NewIndex returns an empty spatial index.
func NewIndex() *Index {
	return &Index{tree: rtreego.NewTree(dimensions, minChildren, maxChildren)}
}

// Insert adds a point to the index.
func (ix *Index) Insert(p IndexedPoint) {
	rect := rtreego.Point{p.Latitude, p.Longitude}.ToRect(indexTolerance)

	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.tree.Insert(&spatialItem{IndexedPoint: &p, rect: rect})
}

// SearchRadius returns the IDs of all indexed points within radiusKm of
// center. Candidates come from a bounding-box intersection; each is then
// checked against the true great-circle distance.
func (ix *Index) SearchRadius(center Point, radiusKm float64) map[string]bool {
	latDeg := (radiusKm / EarthRadiusKm) * (180 / math.Pi)

	// A longitude degree spans cos(latitude) times a latitude degree, so the
	// box must widen east-west away from the equator. The exact-distance check
	// below discards the extra candidates; the box may be generous but must
	// never exclude an in-radius point.
	cosLat := math.Cos(center.Latitude * math.Pi / 180)
	lonDeg := latDeg
	if cosLat > 1e-6 {
		lonDeg = latDeg / cosLat
	} else {
		lonDeg = 180
	}

	bounds, err := rtreego.NewRect(
		rtreego.Point{center.Latitude - latDeg, center.Longitude - lonDeg},
		[]float64{2 * latDeg, 2 * lonDeg},
	)
	if err != nil {
		return map[string]bool{}
	}

	ix.mu.RLock()
	results := ix.tree.SearchIntersect(bounds)
	ix.mu.RUnlock()

	hits := make(map[string]bool, len(results))
	for _, result := range results {
		item, ok := result.(*spatialItem)
		if !ok || item.IndexedPoint == nil {
			continue
		}
		if Distance(center, item.Point) <= radiusKm {
			hits[item.ID] = true
		}
	}
	return hits
}

// Size returns the number of indexed points.
func (ix *Index) Size() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.tree.Size()
}
