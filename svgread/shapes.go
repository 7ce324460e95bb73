package svgread

import (
	"math"

	"github.com/benoitkugler/plotsvg/doc"
	"github.com/benoitkugler/plotsvg/geom"
)

// This file normalizes the high level SVG shapes to cubic segments.

// maxDx is the maximum radians a cubic spline is allowed to span in the
// ellipse parametric angle when approximating an arc.
const maxDx float64 = math.Pi / 8

// addEllipse appends an ellipse as four cubic segments, starting at the
// rightmost point, clockwise in SVG coordinates.
func addEllipse(p *doc.BezPath, cx, cy, rx, ry float64) {
	kx, ky := geom.CircleK*rx, geom.CircleK*ry
	p.MoveTo(geom.Pt(cx+rx, cy))
	p.CubicTo(geom.Pt(cx+rx, cy+ky), geom.Pt(cx+kx, cy+ry), geom.Pt(cx, cy+ry))
	p.CubicTo(geom.Pt(cx-kx, cy+ry), geom.Pt(cx-rx, cy+ky), geom.Pt(cx-rx, cy))
	p.CubicTo(geom.Pt(cx-rx, cy-ky), geom.Pt(cx-kx, cy-ry), geom.Pt(cx, cy-ry))
	p.CubicTo(geom.Pt(cx+kx, cy-ry), geom.Pt(cx+rx, cy-ky), geom.Pt(cx+rx, cy))
	p.Close()
}

// addRect appends a rectangle, with quarter-ellipse corners when rx and ry
// are positive.
func addRect(p *doc.BezPath, x, y, w, h, rx, ry float64) {
	if rx <= 0 || ry <= 0 {
		p.MoveTo(geom.Pt(x, y))
		p.LineTo(geom.Pt(x+w, y))
		p.LineTo(geom.Pt(x+w, y+h))
		p.LineTo(geom.Pt(x, y+h))
		p.Close()
		return
	}
	if rx > w/2 {
		rx = w / 2
	}
	if ry > h/2 {
		ry = h / 2
	}
	kx, ky := geom.CircleK*rx, geom.CircleK*ry

	p.MoveTo(geom.Pt(x+rx, y))
	p.LineTo(geom.Pt(x+w-rx, y))
	p.CubicTo(geom.Pt(x+w-rx+kx, y), geom.Pt(x+w, y+ry-ky), geom.Pt(x+w, y+ry))
	p.LineTo(geom.Pt(x+w, y+h-ry))
	p.CubicTo(geom.Pt(x+w, y+h-ry+ky), geom.Pt(x+w-rx+kx, y+h), geom.Pt(x+w-rx, y+h))
	p.LineTo(geom.Pt(x+rx, y+h))
	p.CubicTo(geom.Pt(x+rx-kx, y+h), geom.Pt(x, y+h-ry+ky), geom.Pt(x, y+h-ry))
	p.LineTo(geom.Pt(x, y+ry))
	p.CubicTo(geom.Pt(x, y+ry-ky), geom.Pt(x+rx-kx, y), geom.Pt(x+rx, y))
	p.Close()
}

// addArc approximates an SVG elliptical arc from pen to end with cubic
// splines, by the method of L. Maisonobe, "Drawing an elliptical arc using
// polylines, quadratic or cubic Bezier curves", 2003.
// https://www.spaceroots.org/documents/elllipse/elliptical-arc.pdf
func addArc(p *doc.BezPath, pen geom.Point, rx, ry, rotDeg float64, largeArc, sweep bool, end geom.Point) {
	rx, ry = math.Abs(rx), math.Abs(ry)
	rotX := rotDeg * math.Pi / 180
	cx, cy := findEllipseCenter(&rx, &ry, rotX, pen.X, pen.Y, end.X, end.Y, sweep, !largeArc)

	startAngle := math.Atan2(pen.Y-cy, pen.X-cx) - rotX
	endAngle := math.Atan2(end.Y-cy, end.X-cx) - rotX
	deltaTheta := endAngle - startAngle
	arcBig := math.Abs(deltaTheta) > math.Pi

	etaStart := math.Atan2(math.Sin(startAngle)/ry, math.Cos(startAngle)/rx)
	etaEnd := math.Atan2(math.Sin(endAngle)/ry, math.Cos(endAngle)/rx)
	deltaEta := etaEnd - etaStart
	if arcBig != largeArc {
		if deltaEta < 0 {
			deltaEta += math.Pi * 2
		} else {
			deltaEta -= math.Pi * 2
		}
	}
	// needed when the ellipse center is at the midpoint of the chord
	if deltaEta < 0 && sweep {
		deltaEta += math.Pi * 2
	} else if deltaEta >= 0 && !sweep {
		deltaEta -= math.Pi * 2
	}

	segs := int(math.Abs(deltaEta)/maxDx) + 1
	dEta := deltaEta / float64(segs)
	tde := math.Tan(dEta / 2)
	alpha := math.Sin(dEta) * (math.Sqrt(4+3*tde*tde) - 1) / 3

	lx, ly := pen.X, pen.Y
	sinTheta, cosTheta := math.Sin(rotX), math.Cos(rotX)
	ldx, ldy := ellipsePrime(rx, ry, sinTheta, cosTheta, etaStart)
	for i := 1; i <= segs; i++ {
		eta := etaStart + dEta*float64(i)
		var px, py float64
		if i == segs {
			px, py = end.X, end.Y // exact end point, no roundoff error
		} else {
			px, py = ellipsePointAt(rx, ry, sinTheta, cosTheta, eta, cx, cy)
		}
		dx, dy := ellipsePrime(rx, ry, sinTheta, cosTheta, eta)
		p.CubicTo(
			geom.Pt(lx+alpha*ldx, ly+alpha*ldy),
			geom.Pt(px-alpha*dx, py-alpha*dy),
			geom.Pt(px, py),
		)
		lx, ly, ldx, ldy = px, py, dx, dy
	}
}

// ellipsePrime gives the tangent vector of the parameterized ellipse at eta.
func ellipsePrime(a, b, sinTheta, cosTheta, eta float64) (px, py float64) {
	bCosEta := b * math.Cos(eta)
	aSinEta := a * math.Sin(eta)
	px = -aSinEta*cosTheta - bCosEta*sinTheta
	py = -aSinEta*sinTheta + bCosEta*cosTheta
	return
}

// ellipsePointAt gives the point of the parameterized ellipse at eta.
func ellipsePointAt(a, b, sinTheta, cosTheta, eta, cx, cy float64) (px, py float64) {
	aCosEta := a * math.Cos(eta)
	bSinEta := b * math.Sin(eta)
	px = cx + aCosEta*cosTheta - bSinEta*sinTheta
	py = cy + aCosEta*sinTheta + bSinEta*cosTheta
	return
}

// findEllipseCenter locates the center of the ellipse if it exists. If it
// does not, the radii are increased minimally for a solution to be possible
// while preserving the rx to ry ratio. The problem is reduced, through
// coordinate transformations, to finding the center of a circle including
// the origin and an arbitrary point.
func findEllipseCenter(rx, ry *float64, rotX, startX, startY, endX, endY float64, sweep, smallArc bool) (cx, cy float64) {
	cos, sin := math.Cos(rotX), math.Sin(rotX)

	// move the origin to the start point
	nx, ny := endX-startX, endY-startY

	// rotate the ellipse x-axis onto the coordinate x-axis
	nx, ny = nx*cos+ny*sin, -nx*sin+ny*cos
	// scale X so that rx == ry; the ellipse becomes a circle of radius ry
	nx *= *ry / *rx

	midX, midY := nx/2, ny/2
	midlenSq := midX*midX + midY*midY

	var hr float64
	if *ry**ry < midlenSq {
		// the requested ellipse does not exist: the chord is longer than
		// the max width, scale rx, ry to fit
		nry := math.Sqrt(midlenSq)
		if *rx == *ry {
			*rx = nry // prevents roundoff
		} else {
			*rx = *rx * nry / *ry
		}
		*ry = nry
	} else {
		hr = math.Sqrt(*ry**ry-midlenSq) / math.Sqrt(midlenSq)
	}
	// when hr is zero, both answers coincide
	if sweep == smallArc {
		cx = midX + midY*hr
		cy = midY - midX*hr
	} else {
		cx = midX - midY*hr
		cy = midY + midX*hr
	}

	// reverse the scale
	cx *= *rx / *ry
	// reverse rotate and translate back to the original coordinates
	return cx*cos - cy*sin + startX, cx*sin + cy*cos + startY
}
