// Package geo holds the great-circle math the simulation moves vehicles
// with. Spherical-Earth model, all functions pure.
package geo

import "math"

const earthRadiusMeters = 6371000

// Offset returns the point reached by travelling meters from (lat, lng)
// along the initial bearing bearingDeg. Longitude is normalized to
// (-180, 180].
func Offset(lat, lng, meters, bearingDeg float64) (float64, float64) {
	br := bearingDeg * math.Pi / 180.0
	phi1 := lat * math.Pi / 180.0
	lam1 := lng * math.Pi / 180.0
	delta := meters / earthRadiusMeters

	sinPhi1 := math.Sin(phi1)
	cosPhi1 := math.Cos(phi1)
	sinDelta := math.Sin(delta)
	cosDelta := math.Cos(delta)

	sinPhi2 := sinPhi1*cosDelta + cosPhi1*sinDelta*math.Cos(br)
	phi2 := math.Asin(sinPhi2)
	y := math.Sin(br) * sinDelta * cosPhi1
	x := cosDelta - sinPhi1*sinPhi2
	lam2 := lam1 + math.Atan2(y, x)

	nlat := phi2 * 180.0 / math.Pi
	nlng := math.Mod(lam2*180.0/math.Pi+540, 360) - 180
	return nlat, nlng
}

// DistanceMeters returns the haversine great-circle distance between two
// points.
func DistanceMeters(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLng := (lng2 - lng1) * math.Pi / 180.0
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180.0)*math.Cos(lat2*math.Pi/180.0)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}

// InitialBearingDeg returns the initial bearing from point 1 to point 2
// in degrees, in [0, 360).
func InitialBearingDeg(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180.0
	phi2 := lat2 * math.Pi / 180.0
	dLam := (lng2 - lng1) * math.Pi / 180.0
	y := math.Sin(dLam) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(dLam)
	theta := math.Atan2(y, x)
	return math.Mod(theta*180.0/math.Pi+360, 360)
}

// StepTowards moves from (lat, lng) towards (destLat, destLng) by at most
// stepMeters. When the remaining distance fits in the step the result
// snaps exactly to the destination and arrived is true.
func StepTowards(lat, lng, destLat, destLng, stepMeters float64) (float64, float64, bool) {
	dist := DistanceMeters(lat, lng, destLat, destLng)
	if dist <= stepMeters {
		return destLat, destLng, true
	}
	brg := InitialBearingDeg(lat, lng, destLat, destLng)
	nlat, nlng := Offset(lat, lng, stepMeters, brg)
	return nlat, nlng, false
}
