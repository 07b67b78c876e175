package manual

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/raceroute/compile"
	"github.com/katalvlaran/raceroute/geom"
	"github.com/katalvlaran/raceroute/route"
)

// ErrBadWaypoint indicates a waypoint that is not three comma-separated numbers.
var ErrBadWaypoint = errors.New("manual: malformed waypoint")

// ParseWaypoints parses a ';'-delimited list of "x,y,z" points. Empty
// entries (e.g. a trailing ';') are ignored.
func ParseWaypoints(s string) ([]geom.Point, error) {
	var out []geom.Point
	for _, tok := range strings.Split(s, ";") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		parts := strings.Split(tok, ",")
		if len(parts) != 3 {
			return nil, fmt.Errorf("%w: %q has %d coordinates", ErrBadWaypoint, tok, len(parts))
		}
		var p geom.Point
		for i, raw := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %q: %v", ErrBadWaypoint, tok, err)
			}
			p[i] = v
		}
		out = append(out, p)
	}
	return out, nil
}

// Waypoints routes req in open space from Start through every waypoint of
// req.ManualPath to End.
func Waypoints(req route.Request) route.Result {
	pts, err := ParseWaypoints(req.ManualPath)
	if err != nil {
		res := route.Failure(err.Error())
		res.Manual = true
		return res
	}

	var segs []route.Segment
	prev := req.Start
	for _, p := range append(pts, req.End) {
		segs = append(segs, compile.Decompose(prev, p)...)
		prev = p
	}
	res := route.Result{Success: true, Manual: true, Segments: segs}
	res.Summarize()
	return res
}
