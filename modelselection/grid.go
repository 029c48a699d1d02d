// Package modelselection provides train/test splitting and exhaustive
// hyperparameter grid search.
package modelselection

import "sort"

// Params is one concrete hyperparameter assignment drawn from a grid.
type Params map[string]interface{}

// Clone returns a shallow copy of the assignment.
func (p Params) Clone() Params {
	c := make(Params, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}

// ParamGrid maps each hyperparameter name to its ordered candidate values.
// The grid denotes the Cartesian product of all value lists.
type ParamGrid map[string][]interface{}

// Size returns the number of configurations the grid expands to. A grid with
// no parameters, or with any empty value list, has size zero.
func (g ParamGrid) Size() int {
	if len(g) == 0 {
		return 0
	}
	size := 1
	for _, values := range g {
		size *= len(values)
	}
	return size
}

// Expand enumerates the Cartesian product in a fixed, reproducible order:
// parameter names sorted lexicographically, values in their given order, with
// the last-sorted name varying fastest. Re-expanding the same grid always
// yields the same sequence.
func (g ParamGrid) Expand() []Params {
	size := g.Size()
	if size == 0 {
		return nil
	}

	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Params, 0, size)
	counters := make([]int, len(names))
	for {
		p := make(Params, len(names))
		for k, name := range names {
			p[name] = g[name][counters[k]]
		}
		out = append(out, p)

		// Odometer increment, last name fastest.
		k := len(names) - 1
		for k >= 0 {
			counters[k]++
			if counters[k] < len(g[names[k]]) {
				break
			}
			counters[k] = 0
			k--
		}
		if k < 0 {
			return out
		}
	}
}
