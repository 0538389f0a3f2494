package utils

import "math"

// RadiusOfEarthInMeters is the mean Earth radius used for all distances.
const RadiusOfEarthInMeters = 6371010.0

func toRadians(deg float64) float64 {
	return deg * (math.Pi / 180)
}

// Distance returns the great-circle distance in meters between two points.
// Points closer than about 20km use the equirectangular approximation,
// which is accurate to well under a meter at that scale.
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	if math.Abs(lat2-lat1) < 0.2 && math.Abs(lon2-lon1) < 0.2 {
		x := toRadians(lon2-lon1) * math.Cos(toRadians(lat1+lat2)/2)
		y := toRadians(lat2 - lat1)
		return RadiusOfEarthInMeters * math.Sqrt(x*x+y*y)
	}

	lat1Rad, lat2Rad := toRadians(lat1), toRadians(lat2)
	deltaLon := toRadians(lon2 - lon1)

	y := math.Hypot(
		math.Cos(lat2Rad)*math.Sin(deltaLon),
		math.Cos(lat1Rad)*math.Sin(lat2Rad)-math.Sin(lat1Rad)*math.Cos(lat2Rad)*math.Cos(deltaLon))
	x := math.Sin(lat1Rad)*math.Sin(lat2Rad) + math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Cos(deltaLon)

	return RadiusOfEarthInMeters * math.Atan2(y, x)
}

// PathLength sums the distances between consecutive [lat, lon] pairs.
// Entries that are not pairs are skipped.
func PathLength(coords [][]float64) float64 {
	var total float64
	var prev []float64
	for _, c := range coords {
		if len(c) != 2 {
			continue
		}
		if prev != nil {
			total += Distance(prev[0], prev[1], c[0], c[1])
		}
		prev = c
	}
	return total
}
