package topology

import (
	"sort"

	"github.com/katalvlaran/raceroute/bfs"
	"github.com/katalvlaran/raceroute/core"
)

// Islands groups the raceways of b that are physically connected through
// raceway and junction edges, ignoring field edges. Each group is sorted;
// groups are ordered by their first ID. A roster where every cable must
// leave the raceways to change trays shows up as several islands.
func (b *Base) Islands() ([][]string, error) {
	comps, err := bfs.Components(b.Graph, bfs.WithEdgeKinds(core.EdgeRaceway, core.EdgeJunction))
	if err != nil {
		return nil, err
	}

	var out [][]string
	for _, comp := range comps {
		seen := make(map[string]struct{})
		var ids []string
		for _, v := range comp {
			n, err := b.Graph.Node(v)
			if err != nil {
				return nil, err
			}
			if n.RacewayID == "" {
				continue
			}
			if _, ok := seen[n.RacewayID]; !ok {
				seen[n.RacewayID] = struct{}{}
				ids = append(ids, n.RacewayID)
			}
		}
		if len(ids) == 0 {
			continue
		}
		sort.Strings(ids)
		out = append(out, ids)
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out, nil
}
