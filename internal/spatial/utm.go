package spatial

import (
	"math"

	"github.com/paulmach/orb"
)

// WGS84 ellipsoid and UTM grid constants. SIRGAS 2000 uses GRS80, whose
// flattening differs from WGS84 by well under a millimetre at map scale.
const (
	wgs84A        = 6378137.0
	wgs84F        = 1 / 298.257223563
	utmScale      = 0.9996
	utmFalseEast  = 500000.0
	utmFalseNorth = 10000000.0 // southern hemisphere
)

// UTMZoneMeridian returns the central meridian of a UTM zone in degrees
func UTMZoneMeridian(zone int) float64 {
	return float64(zone-1)*6 - 180 + 3
}

// UTMToWGS84 returns a projection from easting/northing in the given UTM
// zone to longitude/latitude, for use with orb/project.Geometry.
// Snyder's series; errors stay within a centimetre inside a zone.
func UTMToWGS84(zone int, south bool) orb.Projection {
	e2 := wgs84F * (2 - wgs84F)
	ep2 := e2 / (1 - e2)
	sq := math.Sqrt(1 - e2)
	e1 := (1 - sq) / (1 + sq)
	mu0 := wgs84A * (1 - e2/4 - 3*e2*e2/64 - 5*e2*e2*e2/256)
	lon0 := UTMZoneMeridian(zone)

	return func(p orb.Point) orb.Point {
		x := p[0] - utmFalseEast
		y := p[1]
		if south {
			y -= utmFalseNorth
		}

		mu := y / utmScale / mu0
		phi := mu +
			(3*e1/2-27*math.Pow(e1, 3)/32)*math.Sin(2*mu) +
			(21*e1*e1/16-55*math.Pow(e1, 4)/32)*math.Sin(4*mu) +
			(151*math.Pow(e1, 3)/96)*math.Sin(6*mu) +
			(1097*math.Pow(e1, 4)/512)*math.Sin(8*mu)

		sin, cos, tan := math.Sin(phi), math.Cos(phi), math.Tan(phi)
		c1 := ep2 * cos * cos
		t1 := tan * tan
		w := 1 - e2*sin*sin
		n1 := wgs84A / math.Sqrt(w)
		r1 := wgs84A * (1 - e2) / math.Pow(w, 1.5)
		d := x / (n1 * utmScale)

		lat := phi - (n1*tan/r1)*(d*d/2-
			(5+3*t1+10*c1-4*c1*c1-9*ep2)*math.Pow(d, 4)/24+
			(61+90*t1+298*c1+45*t1*t1-252*ep2-3*c1*c1)*math.Pow(d, 6)/720)
		lon := (d - (1+2*t1+c1)*math.Pow(d, 3)/6 +
			(5-2*c1+28*t1-3*c1*c1+8*ep2+24*t1*t1)*math.Pow(d, 5)/120) / cos

		return orb.Point{lon0 + lon*180/math.Pi, lat * 180 / math.Pi}
	}
}
