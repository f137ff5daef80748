package geo

import (
	"math"
)

// WGS-84 ellipsoid.
const (
	majorSemiAxis = 6378137.0
	minorSemiAxis = 6356752.3142
	flattening    = 1 / 298.257223563

	vincentyIterations = 20
	vincentyTolerance  = 1e-12
)

// Geodesic is the solution of the inverse geodesic problem between two
// locations. Distance is in meters, bearings in degrees.
type Geodesic struct {
	Distance       float64
	InitialBearing float64
	FinalBearing   float64
}

// GeodesicTo solves the inverse problem with Vincenty's formula. ok is false
// when the iteration does not converge (nearly antipodal points).
func (l *Location) GeodesicTo(dest *Location) (g Geodesic, ok bool) {
	L := deg2rad(dest.longitude - l.longitude)
	U1 := math.Atan((1 - flattening) * math.Tan(deg2rad(l.latitude)))
	U2 := math.Atan((1 - flattening) * math.Tan(deg2rad(dest.latitude)))
	sinU1, cosU1 := math.Sin(U1), math.Cos(U1)
	sinU2, cosU2 := math.Sin(U2), math.Cos(U2)

	var (
		lambda     = L
		lambdaP    = 2 * math.Pi
		sinLambda  float64
		cosLambda  float64
		sinSigma   float64
		cosSigma   float64
		sigma      float64
		cosSqAlpha float64
		cos2SigmaM float64
	)

	iterLimit := vincentyIterations
	for math.Abs(lambda-lambdaP) > vincentyTolerance {
		iterLimit--
		if iterLimit == 0 {
			return Geodesic{}, false
		}

		sinLambda, cosLambda = math.Sin(lambda), math.Cos(lambda)
		a := cosU2 * sinLambda
		b := cosU1*sinU2 - sinU1*cosU2*cosLambda
		sinSigma = math.Sqrt(a*a + b*b)
		if sinSigma == 0 {
			// coincident points
			return Geodesic{}, true
		}
		cosSigma = sinU1*sinU2 + cosU1*cosU2*cosLambda
		sigma = math.Atan2(sinSigma, cosSigma)
		sinAlpha := cosU1 * cosU2 * sinLambda / sinSigma
		cosSqAlpha = 1 - sinAlpha*sinAlpha
		if cosSqAlpha != 0 {
			cos2SigmaM = cosSigma - 2*sinU1*sinU2/cosSqAlpha
		} else {
			// equatorial line
			cos2SigmaM = 0
		}
		C := flattening / 16 * cosSqAlpha * (4 + flattening*(4-3*cosSqAlpha))
		lambdaP = lambda
		lambda = L + (1-C)*flattening*sinAlpha*
			(sigma+C*sinSigma*(cos2SigmaM+C*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))
	}

	uSq := cosSqAlpha * (majorSemiAxis*majorSemiAxis - minorSemiAxis*minorSemiAxis) / (minorSemiAxis * minorSemiAxis)
	A := 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
	B := uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))
	deltaSigma := B * sinSigma * (cos2SigmaM + B/4*(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
		B/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))

	return Geodesic{
		Distance:       minorSemiAxis * A * (sigma - deltaSigma),
		InitialBearing: rad2deg(math.Atan2(cosU2*sinLambda, cosU1*sinU2-sinU1*cosU2*cosLambda)),
		FinalBearing:   rad2deg(math.Atan2(cosU1*sinLambda, -sinU1*cosU2+cosU1*sinU2*cosLambda)),
	}, true
}

// GeodesicDistance returns the ellipsoidal distance in meters to dest.
func (l *Location) GeodesicDistance(dest *Location) (float64, bool) {
	g, ok := l.GeodesicTo(dest)
	return g.Distance, ok
}

// GeodesicInitialBearing returns the forward azimuth in degrees at l.
func (l *Location) GeodesicInitialBearing(dest *Location) (float64, bool) {
	g, ok := l.GeodesicTo(dest)
	return g.InitialBearing, ok
}

// GeodesicFinalBearing returns the azimuth in degrees on arrival at dest.
func (l *Location) GeodesicFinalBearing(dest *Location) (float64, bool) {
	g, ok := l.GeodesicTo(dest)
	return g.FinalBearing, ok
}

// RhumbLineBearing returns the constant bearing in degrees of the loxodrome
// from l to dest.
func (l *Location) RhumbLineBearing(dest *Location) float64 {
	dLon := deg2rad(dest.longitude - l.longitude)
	dPhi := mercatorDelta(l.latitude, dest.latitude)
	if math.Abs(dLon) > math.Pi {
		if dLon > 0 {
			dLon = -(2*math.Pi - dLon)
		} else {
			dLon = 2*math.Pi + dLon
		}
	}
	return rad2deg(math.Atan2(dLon, dPhi))
}

// RhumbLineDistance returns the length in meters of the loxodrome from l to
// dest on a sphere of the WGS-84 equatorial radius.
func (l *Location) RhumbLineDistance(dest *Location) float64 {
	dLat := deg2rad(dest.latitude) - deg2rad(l.latitude)
	dLon := math.Abs(deg2rad(dest.longitude) - deg2rad(l.longitude))
	dPhi := mercatorDelta(l.latitude, dest.latitude)

	q := dLat / dPhi
	if math.IsNaN(q) || math.IsInf(q, 0) {
		// east-west line
		q = math.Cos(deg2rad(l.latitude))
	}
	if dLon > math.Pi {
		dLon = 2*math.Pi - dLon
	}
	return math.Sqrt(dLat*dLat+q*q*dLon*dLon) * majorSemiAxis
}

func mercatorDelta(fromLat, toLat float64) float64 {
	return math.Log(math.Tan(deg2rad(toLat)/2+math.Pi/4) / math.Tan(deg2rad(fromLat)/2+math.Pi/4))
}

func deg2rad(d float64) float64 { return d * math.Pi / 180.0 }

func rad2deg(r float64) float64 { return r * 180.0 / math.Pi }
