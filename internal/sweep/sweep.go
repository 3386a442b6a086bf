// Package sweep runs an engine over a grid of parameter values in parallel
// and scores how much structure each run formed.
package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"

	"rdcore/internal/core"
)

// Axis lists the values one parameter takes.
type Axis struct {
	Param  string
	Values []float64
}

// ParseAxis reads "name=lo:hi:n" (n evenly spaced values, inclusive) or
// "name=v1,v2,...".
func ParseAxis(s string) (Axis, error) {
	name, values, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" || values == "" {
		return Axis{}, fmt.Errorf("%w: axis %q, want name=lo:hi:n or name=v1,v2", core.ErrInvalidFormat, s)
	}
	a := Axis{Param: name}
	if parts := strings.Split(values, ":"); len(parts) == 3 {
		lo, err1 := strconv.ParseFloat(parts[0], 64)
		hi, err2 := strconv.ParseFloat(parts[1], 64)
		n, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil || n < 1 {
			return Axis{}, fmt.Errorf("%w: axis range %q", core.ErrInvalidFormat, values)
		}
		if n == 1 {
			a.Values = []float64{lo}
			return a, nil
		}
		for i := 0; i < n; i++ {
			a.Values = append(a.Values, lo+(hi-lo)*float64(i)/float64(n-1))
		}
		return a, nil
	}
	for _, f := range strings.Split(values, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return Axis{}, fmt.Errorf("%w: axis value %q", core.ErrInvalidFormat, f)
		}
		a.Values = append(a.Values, v)
	}
	return a, nil
}

// Grid expands axes into every combination, the first axis varying slowest.
func Grid(axes []Axis) [][]core.Parameter {
	sets := [][]core.Parameter{nil}
	for _, a := range axes {
		next := make([][]core.Parameter, 0, len(sets)*len(a.Values))
		for _, set := range sets {
			for _, v := range a.Values {
				s := append(append([]core.Parameter(nil), set...), core.Parameter{Name: a.Param, Value: v})
				next = append(next, s)
			}
		}
		sets = next
	}
	if len(sets) == 1 && len(sets[0]) == 0 {
		return nil
	}
	return sets
}

// Builder returns a fresh engine for one scenario.
type Builder func() (core.Engine, error)

// Options controls Run.
type Options struct {
	Steps    int
	Workers  int
	Chemical int
	Logger   *slog.Logger
}

// Result is the outcome of one scenario. StdDev of the chosen chemical is the
// structure score: a uniform arena scores zero.
type Result struct {
	Index  int
	Params []core.Parameter
	Mean   float64
	StdDev float64
	Err    error
}

func (r Result) String() string {
	parts := make([]string, len(r.Params))
	for i, p := range r.Params {
		parts[i] = p.Name + "=" + strconv.FormatFloat(p.Value, 'g', -1, 64)
	}
	return strings.Join(parts, " ")
}

// Run evaluates every parameter set with a pool of workers. Results come back
// in input order. Cancelling ctx stops handing out new scenarios; the results
// gathered so far are returned with ctx's error.
func Run(ctx context.Context, build Builder, sets [][]core.Parameter, opts Options) ([]Result, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	jobs := make(chan int)
	results := make(chan Result)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				res := runScenario(build, idx, sets[idx], opts)
				logger.Debug("scenario done", "index", idx, "params", res.String(), "stddev", res.StdDev, "err", res.Err)
				results <- res
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		defer close(jobs)
		for idx := range sets {
			select {
			case jobs <- idx:
			case <-ctx.Done():
				return
			}
		}
	}()

	all := make([]Result, 0, len(sets))
	for res := range results {
		all = append(all, res)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Index < all[j].Index })
	return all, ctx.Err()
}

func runScenario(build Builder, idx int, params []core.Parameter, opts Options) Result {
	res := Result{Index: idx, Params: params}
	e, err := build()
	if err != nil {
		res.Err = err
		return res
	}
	store := e.Parameters()
	for _, p := range params {
		i := store.IndexOf(p.Name)
		if i < 0 {
			res.Err = fmt.Errorf("%w: parameter %q", core.ErrNotFound, p.Name)
			return res
		}
		store.SetValueAt(i, p.Value)
	}
	if err := e.Update(opts.Steps); err != nil {
		res.Err = err
		return res
	}
	vals, err := e.Data(opts.Chemical)
	if err != nil {
		res.Err = err
		return res
	}
	res.Mean, res.StdDev = meanStdDev(vals)
	return res
}

func meanStdDev(vals []float64) (float64, float64) {
	if len(vals) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	mean := sum / float64(len(vals))
	var sq float64
	for _, v := range vals {
		sq += (v - mean) * (v - mean)
	}
	return mean, math.Sqrt(sq / float64(len(vals)))
}

// Rank orders results by descending structure score. Failed scenarios sort
// last.
func Rank(results []Result) []Result {
	out := append([]Result(nil), results...)
	sort.SliceStable(out, func(i, j int) bool {
		if (out[i].Err == nil) != (out[j].Err == nil) {
			return out[i].Err == nil
		}
		return out[i].StdDev > out[j].StdDev
	})
	return out
}
