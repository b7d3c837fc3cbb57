package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/binoviz/bino/internal/flagutil"
	"github.com/binoviz/bino/pkg/cache"
	"github.com/binoviz/bino/pkg/dataset"
	"github.com/binoviz/bino/pkg/errors"
	"github.com/binoviz/bino/pkg/pipeline"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}

// handleFigure renders a figure from query parameters and returns its
// rows as plain text.
func (s *Server) handleFigure(w http.ResponseWriter, r *http.Request) {
	opts, err := s.decodeOptions(r.URL.Query())
	if err != nil {
		s.writeError(w, err)
		return
	}

	res, err := s.Runner.Render(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	cacheState := "miss"
	if res.CacheHit {
		cacheState = "hit"
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Bino-Figure", uuid.NewString())
	w.Header().Set("X-Bino-Cache", cacheState)
	fmt.Fprintln(w, strings.Join(res.Lines, "\n"))
}

// handleDatasets lists the numbered dataset names of a store.
func (s *Server) handleDatasets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	path, err := s.resolveFile(q.Get("file"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	key := cache.Key("names", path, q.Get("delimiter"))
	if s.Names != nil {
		if data, ok, err := s.Names.Get(r.Context(), key); err == nil && ok {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.Write(data)
			return
		}
	}

	store, err := dataset.Open(r.Context(), path, q.Get("delimiter"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	defer store.Close()

	names, err := store.Names(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	var b strings.Builder
	for i, name := range names {
		fmt.Fprintf(&b, "%d\t%s\n", i, name)
	}
	if s.Names != nil {
		if err := s.Names.Set(r.Context(), key, []byte(b.String()), s.NamesTTL); err != nil {
			s.Logger.Warn("dataset listing cache write failed", "err", err)
		}
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, b.String())
}

// decodeOptions turns figure query parameters into pipeline options,
// using the same parsers as the CLI flags.
func (s *Server) decodeOptions(q url.Values) (pipeline.Options, error) {
	var opts pipeline.Options
	opts.Mode = pipeline.Mode(q.Get("mode"))
	opts.Delimiter = q.Get("delimiter")

	if !pipeline.ValidModes[opts.Mode] {
		return opts, errors.New(errors.ErrCodeUnsupported, "unknown plot mode %q", opts.Mode)
	}

	if file := q.Get("file"); file != "" {
		path, err := s.resolveFile(file)
		if err != nil {
			return opts, err
		}
		opts.Source = path
	} else if opts.Mode != pipeline.ModeGraph1D && opts.Mode != pipeline.ModeGraph2D {
		return opts, errors.New(errors.ErrCodeInvalidFlag, "missing file parameter")
	}

	var err error
	for name, dst := range map[string]*int{
		"x": &opts.X, "y": &opts.Y, "z": &opts.Z,
		"colors": &opts.Colors, "colormap": &opts.Colormap, "decimals": &opts.Decimals,
	} {
		if v := q.Get(name); v != "" {
			if *dst, err = strconv.Atoi(v); err != nil {
				return opts, errors.New(errors.ErrCodeInvalidFlag, "%s: invalid integer %q", name, v)
			}
		}
	}
	for name, dst := range map[string]**int{"sort": &opts.Sort, "weights": &opts.Weights} {
		if v := q.Get(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return opts, errors.New(errors.ErrCodeInvalidFlag, "%s: invalid integer %q", name, v)
			}
			*dst = &n
		}
	}
	for name, dst := range map[string]*bool{
		"normalize": &opts.Normalize, "gray": &opts.Grayscale,
		"white-bg": &opts.WhiteBG, "reverse": &opts.Reverse, "no-star": &opts.NoStar,
	} {
		if v := q.Get(name); v != "" {
			if *dst, err = strconv.ParseBool(v); err != nil {
				return opts, errors.New(errors.ErrCodeInvalidFlag, "%s: invalid boolean %q", name, v)
			}
		}
	}
	for name, dst := range map[string]*string{
		"x-transform": &opts.XTransform, "y-transform": &opts.YTransform,
		"z-transform": &opts.ZTransform, "sort-transform": &opts.SortTransform,
		"weights-transform": &opts.WeightsTransform,
		"fn":                &opts.Function, "fny": &opts.FunctionY, "combine": &opts.Combine,
	} {
		*dst = q.Get(name)
	}

	if v := q.Get("bins"); v != "" {
		if opts.XBins, opts.YBins, err = flagutil.ParseBins(v); err != nil {
			return opts, err
		}
	}
	for name, dst := range map[string]**[2]float64{
		"x-range": &opts.XRange, "y-range": &opts.YRange, "z-range": &opts.ZRange,
	} {
		if v := q.Get(name); v != "" {
			if *dst, err = flagutil.ParseRange(name, v); err != nil {
				return opts, err
			}
		}
	}
	if v := q.Get("slice"); v != "" {
		if opts.Slice, err = flagutil.ParseSlice(v); err != nil {
			return opts, err
		}
	}
	if v := q.Get("filter"); v != "" {
		if opts.Filters, err = flagutil.ParseInts("filter", v); err != nil {
			return opts, err
		}
	}
	if v := q.Get("cr"); v != "" {
		if opts.Regions, err = flagutil.ParseFloats("cr", v); err != nil {
			return opts, err
		}
	}
	if v := q.Get("palette"); v != "" {
		if opts.Palette, err = flagutil.ParseInts("palette", v); err != nil {
			return opts, err
		}
	}
	if v := q.Get("cap"); v != "" {
		capVal, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidFlag, "cap: invalid number %q", v)
		}
		opts.Cap = &capVal
	}
	return opts, nil
}
