package svgread

import (
	"fmt"
	"strconv"

	"github.com/benoitkugler/plotsvg/doc"
	"github.com/benoitkugler/plotsvg/geom"
)

// parsePathData compiles an SVG "d" attribute into out. All curve commands
// are normalized to cubics: quadratics are raised and arcs approximated.
func parsePathData(d string, out *doc.BezPath) error {
	p := pathParser{sc: scanner{s: d}, out: out}
	return p.run()
}

type pathParser struct {
	sc  scanner
	out *doc.BezPath

	pen      geom.Point
	subStart geom.Point

	// reflection anchors for the smooth commands
	lastCubicCtrl geom.Point
	lastQuadCtrl  geom.Point
	prevCmd       byte
}

func (p *pathParser) run() error {
	var cmd byte
	for {
		p.sc.skipSep()
		if p.sc.eof() {
			return nil
		}
		if ch := p.sc.peek(); isCommandLetter(ch) {
			cmd = ch
			p.sc.i++
		} else if cmd == 0 {
			return p.errorf("expected command letter")
		} else {
			// implicit repetition; extra MoveTo pairs become LineTo
			switch cmd {
			case 'M':
				cmd = 'L'
			case 'm':
				cmd = 'l'
			}
		}
		if err := p.command(cmd); err != nil {
			return err
		}
		p.prevCmd = cmd
	}
}

func isCommandLetter(ch byte) bool {
	switch ch {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v',
		'C', 'c', 'S', 's', 'Q', 'q', 'T', 't', 'A', 'a', 'Z', 'z':
		return true
	}
	return false
}

// command parses one parameter set of cmd and emits the segment.
func (p *pathParser) command(cmd byte) error {
	rel := cmd >= 'a' && cmd <= 'z'
	abs := func(pt geom.Point) geom.Point {
		if rel {
			return pt.Add(p.pen)
		}
		return pt
	}

	switch cmd {
	case 'M', 'm':
		pt, err := p.point()
		if err != nil {
			return err
		}
		pt = abs(pt)
		p.out.MoveTo(pt)
		p.pen, p.subStart = pt, pt

	case 'L', 'l':
		pt, err := p.point()
		if err != nil {
			return err
		}
		p.lineTo(abs(pt))

	case 'H', 'h':
		x, err := p.sc.number()
		if err != nil {
			return err
		}
		if rel {
			x += p.pen.X
		}
		p.lineTo(geom.Pt(x, p.pen.Y))

	case 'V', 'v':
		y, err := p.sc.number()
		if err != nil {
			return err
		}
		if rel {
			y += p.pen.Y
		}
		p.lineTo(geom.Pt(p.pen.X, y))

	case 'C', 'c':
		c1, err := p.point()
		if err != nil {
			return err
		}
		c2, err := p.point()
		if err != nil {
			return err
		}
		end, err := p.point()
		if err != nil {
			return err
		}
		p.cubicTo(abs(c1), abs(c2), abs(end))

	case 'S', 's':
		c2, err := p.point()
		if err != nil {
			return err
		}
		end, err := p.point()
		if err != nil {
			return err
		}
		c1 := p.pen
		if p.prevCmd == 'C' || p.prevCmd == 'c' || p.prevCmd == 'S' || p.prevCmd == 's' {
			c1 = reflect(p.lastCubicCtrl, p.pen)
		}
		p.cubicTo(c1, abs(c2), abs(end))

	case 'Q', 'q':
		ctrl, err := p.point()
		if err != nil {
			return err
		}
		end, err := p.point()
		if err != nil {
			return err
		}
		p.quadTo(abs(ctrl), abs(end))

	case 'T', 't':
		end, err := p.point()
		if err != nil {
			return err
		}
		ctrl := p.pen
		if p.prevCmd == 'Q' || p.prevCmd == 'q' || p.prevCmd == 'T' || p.prevCmd == 't' {
			ctrl = reflect(p.lastQuadCtrl, p.pen)
		}
		p.quadTo(ctrl, abs(end))

	case 'A', 'a':
		rx, err := p.sc.number()
		if err != nil {
			return err
		}
		ry, err := p.sc.number()
		if err != nil {
			return err
		}
		rot, err := p.sc.number()
		if err != nil {
			return err
		}
		largeArc, err := p.sc.flag()
		if err != nil {
			return err
		}
		sweep, err := p.sc.flag()
		if err != nil {
			return err
		}
		end, err := p.point()
		if err != nil {
			return err
		}
		end = abs(end)
		if end == p.pen {
			return nil
		}
		if rx == 0 || ry == 0 {
			p.lineTo(end)
			return nil
		}
		addArc(p.out, p.pen, rx, ry, rot, largeArc, sweep, end)
		p.pen = end

	case 'Z', 'z':
		p.out.Close()
		p.pen = p.subStart

	default:
		return p.errorf("unsupported command %q", cmd)
	}
	return nil
}

func (p *pathParser) lineTo(pt geom.Point) {
	p.out.LineTo(pt)
	p.pen = pt
}

func (p *pathParser) cubicTo(c1, c2, end geom.Point) {
	p.out.CubicTo(c1, c2, end)
	p.lastCubicCtrl = c2
	p.pen = end
}

// quadTo raises the quadratic to a cubic before emitting it.
func (p *pathParser) quadTo(ctrl, end geom.Point) {
	c := geom.QuadBez{P0: p.pen, P1: ctrl, P2: end}.Raise()
	p.out.CubicTo(c.P1, c.P2, c.P3)
	p.lastQuadCtrl = ctrl
	p.pen = end
}

func (p *pathParser) point() (geom.Point, error) {
	x, err := p.sc.number()
	if err != nil {
		return geom.Point{}, err
	}
	y, err := p.sc.number()
	if err != nil {
		return geom.Point{}, err
	}
	return geom.Pt(x, y), nil
}

func (p *pathParser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("svgread: invalid path data at offset %d: %s",
		p.sc.i, fmt.Sprintf(format, args...))
}

// reflect mirrors ctrl about pivot.
func reflect(ctrl, pivot geom.Point) geom.Point {
	return geom.Pt(2*pivot.X-ctrl.X, 2*pivot.Y-ctrl.Y)
}

// scanner reads numbers from SVG path data.
type scanner struct {
	s string
	i int
}

func (sc *scanner) eof() bool { return sc.i >= len(sc.s) }

func (sc *scanner) peek() byte { return sc.s[sc.i] }

func (sc *scanner) skipSep() {
	for !sc.eof() {
		switch sc.s[sc.i] {
		case ' ', ',', '\t', '\n', '\r':
			sc.i++
		default:
			return
		}
	}
}

// number scans one floating point number, including exponents and the
// compact forms ".5" and "1.".
func (sc *scanner) number() (float64, error) {
	sc.skipSep()
	start := sc.i
	if !sc.eof() && (sc.s[sc.i] == '+' || sc.s[sc.i] == '-') {
		sc.i++
	}
	digits := false
	for !sc.eof() && sc.s[sc.i] >= '0' && sc.s[sc.i] <= '9' {
		sc.i++
		digits = true
	}
	if !sc.eof() && sc.s[sc.i] == '.' {
		sc.i++
		for !sc.eof() && sc.s[sc.i] >= '0' && sc.s[sc.i] <= '9' {
			sc.i++
			digits = true
		}
	}
	if digits && !sc.eof() && (sc.s[sc.i] == 'e' || sc.s[sc.i] == 'E') {
		j := sc.i + 1
		if j < len(sc.s) && (sc.s[j] == '+' || sc.s[j] == '-') {
			j++
		}
		if j < len(sc.s) && sc.s[j] >= '0' && sc.s[j] <= '9' {
			sc.i = j
			for !sc.eof() && sc.s[sc.i] >= '0' && sc.s[sc.i] <= '9' {
				sc.i++
			}
		}
	}
	if !digits {
		return 0, fmt.Errorf("svgread: expected number at offset %d", start)
	}
	return strconv.ParseFloat(sc.s[start:sc.i], 64)
}

// flag scans an arc flag, which may be crammed against the next number
// ("a1 1 0 011 0").
func (sc *scanner) flag() (bool, error) {
	sc.skipSep()
	if sc.eof() {
		return false, fmt.Errorf("svgread: expected flag at offset %d", sc.i)
	}
	switch sc.s[sc.i] {
	case '0':
		sc.i++
		return false, nil
	case '1':
		sc.i++
		return true, nil
	}
	return false, fmt.Errorf("svgread: expected flag at offset %d", sc.i)
}
