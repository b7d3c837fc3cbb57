package grid

// reduceExtremum walks the records once, keeping per touched bin the
// record whose sort key wins. For max the last record with an equal key
// wins, for min the first one. NaN sort keys never displace a winner.
func reduceExtremum(g Grid, xs, ys, zs, ss []float64, max bool) *BinResult {
	res := NewBinResult()
	winners := make(map[Key]float64)
	for i := range xs {
		kx := g.X.Index(xs[i])
		if kx < 0 {
			continue
		}
		ky := g.Y.Index(ys[i])
		if ky < 0 {
			continue
		}
		k := Key{X: kx, Y: ky}
		if best, seen := winners[k]; seen {
			replace := ss[i] >= best
			if !max {
				replace = ss[i] < best
			}
			if !replace {
				continue
			}
		}
		winners[k] = ss[i]
		res.Put(Cell{
			Key:     k,
			XCenter: g.X.Centers[kx],
			YCenter: g.Y.Centers[ky],
			Value:   zs[i],
			Source:  i,
		})
	}
	return res
}

// ReduceMax keeps, for every occupied bin, the record with the largest
// sort key. Ties go to the record seen last.
func ReduceMax(g Grid, xs, ys, zs, ss []float64) *BinResult {
	return reduceExtremum(g, xs, ys, zs, ss, true)
}

// ReduceMin keeps, for every occupied bin, the record with the smallest
// sort key. Ties go to the record seen first.
func ReduceMin(g Grid, xs, ys, zs, ss []float64) *BinResult {
	return reduceExtremum(g, xs, ys, zs, ss, false)
}

// ReduceMean averages the z values of every occupied bin. Cells come out
// in x-major scan order.
func ReduceMean(g Grid, xs, ys, zs []float64) *BinResult {
	nx, ny := g.X.Bins, g.Y.Bins
	sums := make([]float64, nx*ny)
	counts := make([]int, nx*ny)
	for i := range xs {
		kx := g.X.Index(xs[i])
		if kx < 0 {
			continue
		}
		ky := g.Y.Index(ys[i])
		if ky < 0 {
			continue
		}
		sums[kx*ny+ky] += zs[i]
		counts[kx*ny+ky]++
	}
	res := NewBinResult()
	for x := 0; x < nx; x++ {
		for y := 0; y < ny; y++ {
			n := counts[x*ny+y]
			if n == 0 {
				continue
			}
			res.Put(Cell{
				Key:     Key{X: x, Y: y},
				XCenter: g.X.Centers[x],
				YCenter: g.Y.Centers[y],
				Value:   sums[x*ny+y] / float64(n),
				Source:  -1,
			})
		}
	}
	return res
}
