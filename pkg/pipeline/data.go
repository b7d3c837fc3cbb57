package pipeline

import (
	"context"
	"math"
	"time"

	"github.com/binoviz/bino/pkg/dataset"
	"github.com/binoviz/bino/pkg/errors"
	"github.com/binoviz/bino/pkg/transform"
)

// table holds the loaded and prepared data columns of one render: row
// sliced, filtered and transformed.
type table struct {
	x, y, z, s, w []float64

	xName, yName, zName, sName, wName string
	filterNames                       []string

	// sortIsValue reports that no separate sort column was given, so
	// the sort keys are the value column itself.
	sortIsValue bool

	// readTime is how long reading and preparing the columns took.
	readTime time.Duration
}

// records returns the number of rows left after filtering.
func (t *table) records() int {
	return len(t.x)
}

// columnSet selects which optional columns a mode needs. The sort
// column falls back to the value column (y in 1D, z in 2D) when the
// options name none.
type columnSet struct {
	y, z, sort, weights bool
}

// loadTable reads the requested columns from the source and prepares
// them: row slice, length check, filters, weight check and transform
// chains, in that order.
func loadTable(ctx context.Context, opts Options, set columnSet) (*table, error) {
	start := time.Now()
	store, err := dataset.Open(ctx, opts.Source, opts.Delimiter)
	if err != nil {
		return nil, err
	}
	defer store.Close()

	indices := []int{opts.X}
	pos := map[string]int{"x": 0}
	if set.y {
		pos["y"] = len(indices)
		indices = append(indices, opts.Y)
	}
	if set.z {
		pos["z"] = len(indices)
		indices = append(indices, opts.Z)
	}
	sortIsValue := opts.Sort == nil ||
		(set.z && *opts.Sort == opts.Z) ||
		(!set.z && set.y && *opts.Sort == opts.Y)
	if set.sort && !sortIsValue {
		pos["s"] = len(indices)
		indices = append(indices, *opts.Sort)
	}
	if set.weights && opts.Weights != nil {
		pos["w"] = len(indices)
		indices = append(indices, *opts.Weights)
	}
	filterPos := len(indices)
	indices = append(indices, opts.Filters...)

	cols, err := store.Columns(ctx, indices, opts.Slice)
	if err != nil {
		return nil, err
	}
	if err := dataset.CheckLengths(cols); err != nil {
		return nil, err
	}

	data := cols[:filterPos]
	filters := cols[filterPos:]
	if len(filters) > 0 {
		data, err = dataset.ApplyFilters(data, filters)
		if err != nil {
			return nil, err
		}
	}

	t := &table{sortIsValue: sortIsValue}
	t.x, t.xName = data[pos["x"]].Data, data[pos["x"]].Name
	if p, ok := pos["y"]; ok {
		t.y, t.yName = data[p].Data, data[p].Name
	}
	if p, ok := pos["z"]; ok {
		t.z, t.zName = data[p].Data, data[p].Name
	}
	if p, ok := pos["s"]; ok {
		t.s, t.sName = data[p].Data, data[p].Name
	}
	if p, ok := pos["w"]; ok {
		t.w, t.wName = data[p].Data, data[p].Name
		if err := dataset.CheckWeights(t.w, t.wName); err != nil {
			return nil, err
		}
	} else if set.weights {
		t.w = dataset.UnitWeights(len(t.x))
	}
	for _, f := range filters {
		t.filterNames = append(t.filterNames, f.Name)
	}

	if t.records() == 0 {
		return nil, errors.New(errors.ErrCodeEmptySelection, "no data records selected from %s", opts.Source)
	}

	for _, tc := range []struct {
		expr string
		vals *[]float64
	}{
		{opts.XTransform, &t.x},
		{opts.YTransform, &t.y},
		{opts.ZTransform, &t.z},
		{opts.SortTransform, &t.s},
		{opts.WeightsTransform, &t.w},
	} {
		if tc.expr == "" || *tc.vals == nil {
			continue
		}
		chain, err := transform.Parse(tc.expr)
		if err != nil {
			return nil, err
		}
		*tc.vals = chain.Apply(*tc.vals)
	}

	// The sort fallback happens after the transforms so a value
	// transform also moves the sort keys.
	if sortIsValue && set.sort {
		if set.z {
			t.s, t.sName = t.z, t.zName
		} else {
			t.s, t.sName = t.y, t.yName
		}
	}
	t.readTime = time.Since(start)
	return t, nil
}

// dataRange returns the finite min and max of the values.
func dataRange(vals []float64) [2]float64 {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return [2]float64{lo, hi}
}

// pickRange returns the user range if set, otherwise the data range.
func pickRange(user *[2]float64, vals []float64) [2]float64 {
	if user != nil {
		return *user
	}
	return dataRange(vals)
}
