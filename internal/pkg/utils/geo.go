package utils

import "math"

const earthRadiusKm = 6371.0

// HaversineDistance returns the great-circle distance between two points in kilometers.
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// DistanceToSegment returns the distance in kilometers from point p to the
// segment (a, b). Uses an equirectangular projection around the segment,
// which is accurate at corridor scales (tens of kilometers).
func DistanceToSegment(pLat, pLon, aLat, aLon, bLat, bLon float64) float64 {
	cosLat := math.Cos(aLat * math.Pi / 180.0)

	ax, ay := aLon*cosLat, aLat
	bx, by := bLon*cosLat, bLat
	px, py := pLon*cosLat, pLat

	dx, dy := bx-ax, by-ay
	segLenSq := dx*dx + dy*dy
	if segLenSq == 0 {
		return HaversineDistance(pLat, pLon, aLat, aLon)
	}

	t := ((px-ax)*dx + (py-ay)*dy) / segLenSq
	t = math.Max(0, math.Min(1, t))

	nearLon := (ax + t*dx) / cosLat
	nearLat := ay + t*dy

	return HaversineDistance(pLat, pLon, nearLat, nearLon)
}

// DistanceToPolyline returns the minimum distance in kilometers from a point
// to any segment of the polyline given as (lat, lon) pairs.
func DistanceToPolyline(lat, lon float64, polyline [][2]float64) float64 {
	if len(polyline) == 0 {
		return math.Inf(1)
	}
	if len(polyline) == 1 {
		return HaversineDistance(lat, lon, polyline[0][0], polyline[0][1])
	}

	min := math.Inf(1)
	for i := 0; i < len(polyline)-1; i++ {
		d := DistanceToSegment(
			lat, lon,
			polyline[i][0], polyline[i][1],
			polyline[i+1][0], polyline[i+1][1],
		)
		if d < min {
			min = d
		}
	}
	return min
}

// ValidateCoordinates reports whether lat/lon form a valid WGS84 coordinate.
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// ValidateRadius reports whether the corridor radius is usable (0.1 - 100 km).
func ValidateRadius(radiusKm float64) bool {
	return radiusKm >= 0.1 && radiusKm <= 100
}
