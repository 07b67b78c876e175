package topology

import (
	"encoding/binary"
	"encoding/hex"
	"math"
	"sort"

	"golang.org/x/crypto/sha3"

	"github.com/katalvlaran/raceroute/capacity"
	"github.com/katalvlaran/raceroute/route"
)

// Fingerprint identifies the base graph that Build would produce for
// raceways and opts. It covers raceway IDs, geometry and the topology
// options only; fill and group changes leave it unchanged.
func Fingerprint(raceways []capacity.Raceway, opts route.Options) string {
	opts = opts.WithDefaults()
	ids := make([]int, len(raceways))
	for i := range ids {
		ids[i] = i
	}
	sort.Slice(ids, func(a, b int) bool { return raceways[ids[a]].ID < raceways[ids[b]].ID })

	h := sha3.New256()
	var buf [8]byte
	putFloat := func(v float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		h.Write(buf[:])
	}

	putFloat(opts.JunctionTolerance)
	putFloat(opts.MaxFieldEdge)
	putFloat(opts.FieldPenalty)
	putFloat(float64(opts.MaxFieldNeighbors))
	for _, i := range ids {
		rw := raceways[i]
		h.Write([]byte(rw.ID))
		h.Write([]byte{0})
		for _, v := range rw.Start {
			putFloat(v)
		}
		for _, v := range rw.End {
			putFloat(v)
		}
	}

	return hex.EncodeToString(h.Sum(nil))
}
