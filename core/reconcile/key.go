package reconcile

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Key is the tuple of compare-by values of a row.
type Key []any

// String renders the key for logs, e.g. "(1, ABCDE)".
func (k Key) String() string {
	parts := make([]string, len(k))
	for i, v := range k {
		if v == nil {
			parts[i] = "NULL"
			continue
		}
		parts[i] = fmt.Sprintf("%v", v)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// encode returns a map-safe representation. Two keys encode identically iff
// they are element-wise equal, with nil equal to nil. Values of different
// types never collide. NaN floats encode identically and therefore group together.
func (k Key) encode() string {
	var b strings.Builder
	for _, v := range k {
		switch x := v.(type) {
		case nil:
			b.WriteString("n;")
		case string:
			b.WriteByte('s')
			b.WriteString(strconv.Itoa(len(x)))
			b.WriteByte(':')
			b.WriteString(x)
		case int64:
			b.WriteByte('i')
			b.WriteString(strconv.FormatInt(x, 10))
			b.WriteByte(';')
		case float64:
			b.WriteByte('f')
			if math.IsNaN(x) {
				b.WriteString("NaN")
			} else if x == 0 {
				// -0 and 0 compare equal
				b.WriteByte('0')
			} else {
				b.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
			}
			b.WriteByte(';')
		case bool:
			if x {
				b.WriteString("b1")
			} else {
				b.WriteString("b0")
			}
		default:
			s := fmt.Sprintf("%T:%v", x, x)
			b.WriteByte('x')
			b.WriteString(strconv.Itoa(len(s)))
			b.WriteByte(':')
			b.WriteString(s)
		}
	}
	return b.String()
}

// ResolveColumns maps column names to their positions in the dataset.
// All absent names are reported together in a MissingColumnError.
func ResolveColumns(ds *Dataset, origin Origin, names []string) ([]int, error) {
	idx := make([]int, len(names))
	var missing []string
	for i, name := range names {
		pos, ok := ds.ColumnIndex(name)
		if !ok {
			missing = append(missing, name)
			continue
		}
		idx[i] = pos
	}
	if len(missing) > 0 {
		return nil, &MissingColumnError{Dataset: ds.Name, Origin: origin, Columns: missing}
	}
	return idx, nil
}

// ExtractKey builds the key of a row from pre-resolved column positions.
func ExtractKey(row Row, keyIdx []int) Key {
	k := make(Key, len(keyIdx))
	for i, pos := range keyIdx {
		k[i] = row.Values[pos]
	}
	return k
}

// Grouping buckets the rows of one dataset by key.
// Keys are kept in first-encounter order and row indices within a bucket
// keep dataset order.
type Grouping struct {
	// Keys holds the distinct keys in first-encounter order.
	Keys []Key

	// Rows holds, parallel to Keys, the dataset row indices of each bucket.
	Rows [][]int

	index map[string]int
}

// Group buckets the dataset rows by the key at keyIdx in a single pass.
func Group(ds *Dataset, keyIdx []int) *Grouping {
	g := &Grouping{index: make(map[string]int)}
	for i, row := range ds.Rows {
		k := ExtractKey(row, keyIdx)
		enc := k.encode()
		pos, ok := g.index[enc]
		if !ok {
			pos = len(g.Keys)
			g.index[enc] = pos
			g.Keys = append(g.Keys, k)
			g.Rows = append(g.Rows, nil)
		}
		g.Rows[pos] = append(g.Rows[pos], i)
	}
	return g
}

// Len returns the number of distinct keys.
func (g *Grouping) Len() int {
	return len(g.Keys)
}

// Lookup returns the row indices sharing key k.
func (g *Grouping) Lookup(k Key) ([]int, bool) {
	pos, ok := g.index[k.encode()]
	if !ok {
		return nil, false
	}
	return g.Rows[pos], true
}
