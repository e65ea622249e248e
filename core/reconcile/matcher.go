package reconcile

import "sync"

// KeyMatch is the matcher output for one distinct key.
type KeyMatch struct {
	// Key is the shared compare-by tuple.
	Key Key

	// Outcomes holds one matched or source-only outcome per source row of
	// the key, in source order.
	Outcomes []Outcome

	// Unmatched lists destination row indices of the key never paired.
	Unmatched []int
}

// keyPlan is the unit of work handed to the matcher: all rows of one key.
type keyPlan struct {
	key         Key
	source      []int
	destination []int
}

// buildPlan lists keys in source first-encounter order, followed by keys only
// present in the destination in destination first-encounter order.
func buildPlan(src, dst *Grouping) []keyPlan {
	plan := make([]keyPlan, 0, src.Len()+dst.Len())
	for i, k := range src.Keys {
		d, _ := dst.Lookup(k)
		plan = append(plan, keyPlan{key: k, source: src.Rows[i], destination: d})
	}
	for i, k := range dst.Keys {
		if _, ok := src.Lookup(k); ok {
			continue
		}
		plan = append(plan, keyPlan{key: k, destination: dst.Rows[i]})
	}
	return plan
}

type matcher struct {
	source      *Dataset
	destination *Dataset
	proj        *Projection
	mode        MatchMode
}

func (m *matcher) match(p keyPlan) KeyMatch {
	if m.mode == MatchPositional {
		return m.matchPositional(p)
	}
	return m.matchExact(p)
}

// matchExact runs the duplicate-consuming greedy search. For every source row it
// scans the unconsumed destination rows of the key in order and takes the first
// one equal on every column; failing that it takes the first unconsumed row as a
// partial match. Consumption is tracked per candidate, the datasets are never
// modified. The scan is O(s*d) for a key with s source and d destination rows, so
// datasets where most rows share a single key degrade to O(n*m).
func (m *matcher) matchExact(p keyPlan) KeyMatch {
	km := KeyMatch{Key: p.key, Outcomes: make([]Outcome, 0, len(p.source))}
	consumed := make([]bool, len(p.destination))

	for _, si := range p.source {
		srow := &m.source.Rows[si]
		pick, firstFree := -1, -1
		for j, di := range p.destination {
			if consumed[j] {
				continue
			}
			if firstFree < 0 {
				firstFree = j
			}
			if RowsEqual(*srow, m.destination.Rows[di], m.proj) {
				pick = j
				break
			}
		}

		if pick < 0 && firstFree < 0 {
			km.Outcomes = append(km.Outcomes, sourceOnly(p.key, srow, len(m.proj.Columns)))
			continue
		}

		var mask DiffMask
		if pick >= 0 {
			mask = make(DiffMask, len(m.proj.Columns))
		} else {
			pick = firstFree
			mask = Diff(*srow, m.destination.Rows[p.destination[pick]], m.proj)
		}
		consumed[pick] = true
		km.Outcomes = append(km.Outcomes, Outcome{
			Kind:        KindMatched,
			Key:         p.key,
			Source:      srow,
			Destination: &m.destination.Rows[p.destination[pick]],
			Diff:        mask,
		})
	}

	for j, di := range p.destination {
		if !consumed[j] {
			km.Unmatched = append(km.Unmatched, di)
		}
	}
	return km
}

// matchPositional pairs the i-th source row of the key with the i-th destination
// row and leaves the tail of the longer side unpaired.
func (m *matcher) matchPositional(p keyPlan) KeyMatch {
	km := KeyMatch{Key: p.key, Outcomes: make([]Outcome, 0, len(p.source))}
	n := min(len(p.source), len(p.destination))

	for i := 0; i < n; i++ {
		srow := &m.source.Rows[p.source[i]]
		drow := &m.destination.Rows[p.destination[i]]
		km.Outcomes = append(km.Outcomes, Outcome{
			Kind:        KindMatched,
			Key:         p.key,
			Source:      srow,
			Destination: drow,
			Diff:        Diff(*srow, *drow, m.proj),
		})
	}
	for _, si := range p.source[n:] {
		km.Outcomes = append(km.Outcomes, sourceOnly(p.key, &m.source.Rows[si], len(m.proj.Columns)))
	}
	if n < len(p.destination) {
		km.Unmatched = append(km.Unmatched, p.destination[n:]...)
	}
	return km
}

// matchAll runs the matcher over every key. With more than one worker the plan
// is split into contiguous partitions; each goroutine writes only its own slots
// of the result slice, so no locking is needed.
func (m *matcher) matchAll(plan []keyPlan, workers int) []KeyMatch {
	results := make([]KeyMatch, len(plan))
	if workers < 2 || len(plan) < 2 {
		for i, p := range plan {
			results[i] = m.match(p)
		}
		return results
	}

	chunk := (len(plan) + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < len(plan); start += chunk {
		end := min(start+chunk, len(plan))
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := start; i < end; i++ {
				results[i] = m.match(plan[i])
			}
		}()
	}
	wg.Wait()
	return results
}

func sourceOnly(key Key, row *Row, width int) Outcome {
	return Outcome{Kind: KindSourceOnly, Key: key, Source: row, Diff: AllDifferent(width)}
}
