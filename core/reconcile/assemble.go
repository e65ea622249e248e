package reconcile

import "sort"

// Assemble packages matcher output into a Report. It performs no comparisons:
// outcomes are emitted key by key in the order given, then every unmatched
// destination row in destination order.
func Assemble(source, destination *Dataset, proj *Projection, compareBy []string, mode MatchMode, matches []KeyMatch) *Report {
	report := &Report{
		Source:      source.Name,
		Destination: destination.Name,
		Columns:     proj.Columns,
		CompareBy:   compareBy,
		Mode:        mode,
		Outcomes:    make([]Outcome, 0, source.Len()+destination.Len()),
		proj:        proj,
	}

	type leftover struct {
		index int
		key   Key
	}
	var leftovers []leftover
	for _, km := range matches {
		report.Outcomes = append(report.Outcomes, km.Outcomes...)
		for _, di := range km.Unmatched {
			leftovers = append(leftovers, leftover{index: di, key: km.Key})
		}
	}

	sort.Slice(leftovers, func(i, j int) bool {
		return leftovers[i].index < leftovers[j].index
	})
	for _, l := range leftovers {
		report.Outcomes = append(report.Outcomes, Outcome{
			Kind:        KindDestinationOnly,
			Key:         l.key,
			Destination: &destination.Rows[l.index],
			Diff:        AllDifferent(len(proj.Columns)),
		})
	}

	report.Summary = summarize(report, source.Len(), destination.Len())
	return report
}

func summarize(r *Report, sourceRows, destinationRows int) Summary {
	s := Summary{
		SourceRows:      sourceRows,
		DestinationRows: destinationRows,
		ColumnDiffs:     make(map[string]int, len(r.Columns)),
	}
	for _, c := range r.Columns {
		s.ColumnDiffs[c] = 0
	}

	for _, o := range r.Outcomes {
		switch o.Kind {
		case KindMatched:
			s.Matched++
			if !o.Diff.Any() {
				s.Exact++
				continue
			}
			s.Partial++
			for i, differs := range o.Diff {
				if differs {
					s.ColumnDiffs[r.Columns[i]]++
				}
			}
		case KindSourceOnly:
			s.SourceOnly++
		case KindDestinationOnly:
			s.DestinationOnly++
		}
	}
	return s
}
