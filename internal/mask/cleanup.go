package mask

import "silhouette-maker/internal/region"

// RemoveSpecks relabels small disconnected subject components as background.
// minRatio is the minimum fraction of total subject cells a component needs
// to survive. Components are 8-connected so diagonal chains stay together.
// The grid is modified in place.
func RemoveSpecks(g *region.Grid, minRatio float64) {
	w, h := g.W, g.H

	total := 0
	for _, l := range g.Labels {
		if l != region.Background {
			total++
		}
	}
	if total == 0 || minRatio <= 0 {
		return
	}

	// 8-connected flood fill BFS over subject cells
	labels := make([]int, w*h)
	for i := range labels {
		labels[i] = -1
	}
	var compSizes []int
	compID := 0

	dx := [8]int{-1, 0, 1, -1, 1, -1, 0, 1}
	dy := [8]int{-1, -1, -1, 0, 0, 1, 1, 1}

	queue := make([]int, 0, 1024)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if g.Labels[idx] == region.Background || labels[idx] >= 0 {
				continue
			}

			queue = queue[:0]
			queue = append(queue, idx)
			labels[idx] = compID
			size := 0

			for len(queue) > 0 {
				curr := queue[0]
				queue = queue[1:]
				size++

				cy := curr / w
				cx := curr % w
				for d := 0; d < 8; d++ {
					nx := cx + dx[d]
					ny := cy + dy[d]
					if nx < 0 || nx >= w || ny < 0 || ny >= h {
						continue
					}
					ni := ny*w + nx
					if g.Labels[ni] != region.Background && labels[ni] < 0 {
						labels[ni] = compID
						queue = append(queue, ni)
					}
				}
			}

			compSizes = append(compSizes, size)
			compID++
		}
	}

	if compID <= 1 {
		return
	}

	minSize := int(float64(total) * minRatio)

	for i, l := range g.Labels {
		if l != region.Background && compSizes[labels[i]] < minSize {
			g.Labels[i] = region.Background
		}
	}
}
