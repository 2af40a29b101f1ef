// Package geometry decodes the WKT subset used by the zone dataset into
// GeoJSON-shaped geometry objects.
package geometry

import (
	"strconv"
	"strings"
)

// Kind tags the decoded geometry variant.
type Kind int

const (
	Unsupported Kind = iota
	Polygon
	MultiPolygon
)

// Coord is a [longitude, latitude] pair. WKT stores x (longitude) first and
// the order is preserved into GeoJSON, never swapped.
type Coord [2]float64

// Geometry is a decoded zone geometry. Unsupported geometries marshal to an
// empty JSON object, which is the documented fallback rather than an error.
type Geometry struct {
	Kind    Kind
	Rings   [][]Coord   // Polygon: exterior ring plus any holes
	Polygon [][][]Coord // MultiPolygon: list of polygons
}

// Decode parses a WKT string. Anything other than POLYGON or MULTIPOLYGON
// (including an empty string) yields an Unsupported geometry.
func Decode(wkt string) Geometry {
	s := strings.TrimSpace(wkt)
	switch {
	case strings.HasPrefix(s, "POLYGON "):
		rings, ok := parseRings(strings.TrimPrefix(s, "POLYGON "))
		if !ok {
			return Geometry{}
		}
		return Geometry{Kind: Polygon, Rings: rings}
	case strings.HasPrefix(s, "MULTIPOLYGON "):
		polys, ok := parsePolygonList(strings.TrimPrefix(s, "MULTIPOLYGON "))
		if !ok {
			return Geometry{}
		}
		return Geometry{Kind: MultiPolygon, Polygon: polys}
	default:
		return Geometry{}
	}
}

// MarshalJSON renders the GeoJSON geometry object, or {} for Unsupported.
func (g Geometry) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	switch g.Kind {
	case Polygon:
		b.WriteString(`{"type":"Polygon","coordinates":`)
		writeRings(&b, g.Rings)
		b.WriteByte('}')
	case MultiPolygon:
		b.WriteString(`{"type":"MultiPolygon","coordinates":[`)
		for i, rings := range g.Polygon {
			if i > 0 {
				b.WriteByte(',')
			}
			writeRings(&b, rings)
		}
		b.WriteString(`]}`)
	default:
		b.WriteString(`{}`)
	}
	return []byte(b.String()), nil
}

func writeRings(b *strings.Builder, rings [][]Coord) {
	b.WriteByte('[')
	for i, ring := range rings {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('[')
		for j, c := range ring {
			if j > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('[')
			b.WriteString(strconv.FormatFloat(c[0], 'f', -1, 64))
			b.WriteByte(',')
			b.WriteString(strconv.FormatFloat(c[1], 'f', -1, 64))
			b.WriteByte(']')
		}
		b.WriteByte(']')
	}
	b.WriteByte(']')
}

// parseRings parses "((x y, x y, ...), (x y, ...))".
func parseRings(s string) ([][]Coord, bool) {
	inner, ok := stripParens(s)
	if !ok {
		return nil, false
	}
	var rings [][]Coord
	for _, part := range splitTopLevel(inner) {
		ring, ok := parseRing(part)
		if !ok {
			return nil, false
		}
		rings = append(rings, ring)
	}
	if len(rings) == 0 {
		return nil, false
	}
	return rings, true
}

// parsePolygonList parses "(((x y, ...)), ((x y, ...)))".
func parsePolygonList(s string) ([][][]Coord, bool) {
	inner, ok := stripParens(s)
	if !ok {
		return nil, false
	}
	var polys [][][]Coord
	for _, part := range splitTopLevel(inner) {
		rings, ok := parseRings(part)
		if !ok {
			return nil, false
		}
		polys = append(polys, rings)
	}
	if len(polys) == 0 {
		return nil, false
	}
	return polys, true
}

// parseRing parses "(x y, x y, ...)".
func parseRing(s string) ([]Coord, bool) {
	inner, ok := stripParens(s)
	if !ok {
		return nil, false
	}
	var ring []Coord
	for _, pair := range strings.Split(inner, ",") {
		fields := strings.Fields(pair)
		if len(fields) != 2 {
			return nil, false
		}
		x, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, false
		}
		y, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, false
		}
		ring = append(ring, Coord{x, y})
	}
	if len(ring) == 0 {
		return nil, false
	}
	return ring, true
}

// stripParens removes one balanced outer pair of parentheses.
func stripParens(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return "", false
	}
	depth := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != len(s)-1 {
				return "", false // outer parens close early
			}
		}
	}
	if depth != 0 {
		return "", false
	}
	return s[1 : len(s)-1], true
}

// splitTopLevel splits on commas that sit outside any parentheses.
func splitTopLevel(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	parts = append(parts, strings.TrimSpace(s[start:]))
	return parts
}
