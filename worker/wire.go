// Package worker is the request/response boundary around the routing
// engine.
//
// Every Request carries the full raceway roster (with current fills), the
// options, an optional cached base graph and exactly one cable. Handle
// builds a fresh engine per message, so a Request is self-contained and
// handlers share no routing state. Pool runs handlers on isolated
// goroutines; Session is the caller-side owner of fills, shared history and
// the snapshot version used to detect stale responses.
package worker

import (
	"bufio"
	"bytes"
	"errors"
	"io"

	"github.com/sugawarayuuta/sonnet"

	"github.com/katalvlaran/raceroute/capacity"
	"github.com/katalvlaran/raceroute/geom"
	"github.com/katalvlaran/raceroute/route"
	"github.com/katalvlaran/raceroute/topology"
)

// Cable is the cable part of a Request.
type Cable struct {
	Name       string     `json:"name,omitempty"`
	Start      geom.Point `json:"start"`
	End        geom.Point `json:"end"`
	Group      string     `json:"group,omitempty"`
	ManualPath string     `json:"manual_path,omitempty"`
	RacewayIDs []string   `json:"raceway_ids,omitempty"`
}

// Route converts c into an engine request for a cable of the given area.
func (c Cable) Route(area float64) route.Request {
	return route.Request{
		Cable:      c.Name,
		Start:      c.Start,
		End:        c.End,
		Area:       area,
		Group:      c.Group,
		ManualPath: c.ManualPath,
		RacewayIDs: c.RacewayIDs,
	}
}

// Request is one routing message.
type Request struct {
	RequestID       string             `json:"request_id,omitempty"`
	SnapshotVersion uint64             `json:"snapshot_version,omitempty"`
	Raceways        []capacity.Raceway `json:"raceways"`
	Options         route.Options      `json:"options"`
	BaseGraph       *topology.Base     `json:"base_graph"`
	Cable           Cable              `json:"cable"`
	CableArea       float64            `json:"cable_area"`
	SharedSegments  []geom.Segment     `json:"shared_segments,omitempty"`
}

// Response is the reply to one Request. Error is set when the request
// could not be processed or the search found no path; manual-route
// failures are reported through Message.
type Response struct {
	RequestID       string `json:"request_id,omitempty"`
	SnapshotVersion uint64 `json:"snapshot_version,omitempty"`
	route.Result
	Error string `json:"error,omitempty"`
	// BaseGraph is set when the handler had to build a new base graph.
	BaseGraph *topology.Base `json:"base_graph,omitempty"`
}

// DecodeRequest parses one JSON request.
func DecodeRequest(data []byte) (Request, error) {
	var req Request
	err := sonnet.Unmarshal(data, &req)
	return req, err
}

// EncodeResponse renders resp as JSON.
func EncodeResponse(resp Response) ([]byte, error) {
	return sonnet.Marshal(resp)
}

// Decoder reads a stream of JSON requests. Values may be separated by any
// JSON whitespace; each one is framed here and then decoded with sonnet.
type Decoder struct{ r *bufio.Reader }

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder { return &Decoder{r: bufio.NewReader(r)} }

// Next decodes the next request. It returns io.EOF once only whitespace is
// left, and io.ErrUnexpectedEOF when the input stops inside a value.
func (d *Decoder) Next() (Request, error) {
	var req Request
	raw, err := d.value()
	if err != nil {
		return req, err
	}
	err = sonnet.Unmarshal(raw, &req)
	return req, err
}

// value returns the bytes of the next top-level JSON value.
func (d *Decoder) value() ([]byte, error) {
	first, err := d.skipSpace()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteByte(first)
	if first != '{' && first != '[' {
		return d.scalar(&buf)
	}

	depth, inString, escaped := 1, false, false
	for depth > 0 {
		c, err := d.r.ReadByte()
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		if err != nil {
			return nil, err
		}
		buf.WriteByte(c)
		switch {
		case escaped:
			escaped = false
		case inString:
			if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '{' || c == '[':
			depth++
		case c == '}' || c == ']':
			depth--
		}
	}
	return buf.Bytes(), nil
}

// scalar reads a non-container value up to the next whitespace. Requests
// are objects, so sonnet rejects whatever this returns with a type error.
func (d *Decoder) scalar(buf *bytes.Buffer) ([]byte, error) {
	for {
		c, err := d.r.ReadByte()
		if errors.Is(err, io.EOF) {
			return buf.Bytes(), nil
		}
		if err != nil {
			return nil, err
		}
		if isSpace(c) {
			return buf.Bytes(), nil
		}
		buf.WriteByte(c)
	}
}

// skipSpace returns the first non-whitespace byte, or io.EOF.
func (d *Decoder) skipSpace() (byte, error) {
	for {
		c, err := d.r.ReadByte()
		if err != nil {
			return 0, err
		}
		if !isSpace(c) {
			return c, nil
		}
	}
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }

// Encoder writes a stream of JSON responses, one per line.
type Encoder struct{ enc *sonnet.Encoder }

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder { return &Encoder{enc: sonnet.NewEncoder(w)} }

// Write encodes resp followed by a newline.
func (e *Encoder) Write(resp Response) error { return e.enc.Encode(resp) }
