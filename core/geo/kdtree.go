package geo

import (
	"math"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// site is a point projected onto Earth-centred cartesian coordinates. The
// squared chord length between two sites grows monotonically with their
// great-circle distance, so the nearest site in R3 is the nearest on the
// sphere.
type site struct {
	idx int
	xyz [3]float64
}

func newSite(idx int, p Point) site {
	phi, lambda := radians(p.Lat), radians(p.Lon)
	return site{idx: idx, xyz: [3]float64{
		EarthRadiusKm * math.Cos(phi) * math.Cos(lambda),
		EarthRadiusKm * math.Cos(phi) * math.Sin(lambda),
		EarthRadiusKm * math.Sin(phi),
	}}
}

func (s site) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return s.xyz[d] - c.(site).xyz[d]
}

func (s site) Dims() int { return 3 }

func (s site) Distance(c kdtree.Comparable) float64 {
	q := c.(site)
	var sum float64
	for d := range s.xyz {
		diff := s.xyz[d] - q.xyz[d]
		sum += diff * diff
	}
	return sum
}

type sites []site

func (s sites) Index(i int) kdtree.Comparable         { return s[i] }
func (s sites) Len() int                              { return len(s) }
func (s sites) Pivot(d kdtree.Dim) int                { return plane{sites: s, Dim: d}.Pivot() }
func (s sites) Slice(start, end int) kdtree.Interface { return s[start:end] }

type plane struct {
	kdtree.Dim
	sites
}

func (p plane) Less(i, j int) bool { return p.sites[i].xyz[p.Dim] < p.sites[j].xyz[p.Dim] }
func (p plane) Pivot() int         { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.sites = p.sites[start:end]
	return p
}
func (p plane) Swap(i, j int) { p.sites[i], p.sites[j] = p.sites[j], p.sites[i] }

// KDTree computes nearest distances through a k-d tree. Each query keeps
// the two closest sites, one of which is the query itself.
func KDTree(points []Point) ([]float64, error) {
	if len(points) < 2 {
		return nil, ErrTooFewPoints
	}
	all := make(sites, len(points))
	for i, p := range points {
		all[i] = newSite(i, p)
	}
	// kdtree.New reorders its input.
	tree := kdtree.New(append(sites(nil), all...), false)

	out := make([]float64, len(points))
	for i, q := range all {
		keep := kdtree.NewNKeeper(2)
		tree.NearestSet(keep, q)
		best := math.Inf(1)
		for _, c := range keep.Heap {
			if c.Comparable == nil {
				continue
			}
			other := c.Comparable.(site)
			if other.idx == q.idx {
				continue
			}
			if d := Haversine(points[i], points[other.idx]); d < best {
				best = d
			}
		}
		out[i] = best
	}
	return out, nil
}
