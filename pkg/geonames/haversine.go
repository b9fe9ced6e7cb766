package geonames

import "math"

// EarthRadiusKM is the mean Earth radius used for all great-circle
// distances.
const EarthRadiusKM = 6371.0

// Distance returns the haversine great-circle distance between two
// coordinates in kilometers. It is symmetric and Distance(a, a) is
// zero up to floating-point epsilon.
func Distance(a, b Coordinate) float64 {
	dLat := radians(b.Latitude - a.Latitude)
	dLon := radians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Latitude))*math.Cos(radians(b.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKM * c
}

// BoundingBox is a rectangular envelope around a centre point. It is
// over-inclusive near the poles and along longitude, so it is only
// ever a fast reject ahead of an exact Distance check — never a fast
// accept.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// NewBoundingBox builds the envelope around centre that contains every
// point within thresholdKM.
func NewBoundingBox(centre Coordinate, thresholdKM float64) BoundingBox {
	latDiff := thresholdKM / radians(EarthRadiusKM)
	lonDiff := thresholdKM / radians(EarthRadiusKM*math.Cos(radians(centre.Latitude)))

	return BoundingBox{
		MinLat: centre.Latitude - latDiff,
		MaxLat: centre.Latitude + latDiff,
		MinLon: centre.Longitude - lonDiff,
		MaxLon: centre.Longitude + lonDiff,
	}
}

// Contains reports whether the point lies inside the box, inclusive on
// both axes.
func (b BoundingBox) Contains(p Coordinate) bool {
	return p.Latitude >= b.MinLat && p.Latitude <= b.MaxLat &&
		p.Longitude >= b.MinLon && p.Longitude <= b.MaxLon
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
