package analysis

import (
	"fmt"
	"math"
	"strconv"

	"github.com/harrison/trialstats/internal/models"
)

// joinKey canonicalizes numeric keys so "3", "3.0" and " 3" match.
func joinKey(cell string) string {
	v := models.ParseFloat(cell)
	if math.IsNaN(v) || v != math.Trunc(v) {
		return cell
	}
	return strconv.FormatInt(int64(v), 10)
}

// innerJoin joins left and right on key. Output rows follow left order,
// and for each left row the matching right rows in right order. Columns
// present on both sides (other than key) get "_x" and "_y" suffixes.
func innerJoin(left, right *models.Table, key string) (*models.Table, error) {
	lk, ok := left.ColumnIndex(key)
	if !ok {
		return nil, fmt.Errorf("left table has no column %q", key)
	}
	rk, ok := right.ColumnIndex(key)
	if !ok {
		return nil, fmt.Errorf("right table has no column %q", key)
	}

	header := []string{key}
	var leftCols, rightCols []int
	for i, h := range left.Header {
		if i == lk {
			continue
		}
		name := h
		if j, shared := right.ColumnIndex(h); shared && j != rk {
			name = h + "_x"
		}
		header = append(header, name)
		leftCols = append(leftCols, i)
	}
	for i, h := range right.Header {
		if i == rk {
			continue
		}
		name := h
		if j, shared := left.ColumnIndex(h); shared && j != lk {
			name = h + "_y"
		}
		header = append(header, name)
		rightCols = append(rightCols, i)
	}

	index := make(map[string][]int)
	for i, row := range right.Rows {
		k := joinKey(row[rk])
		index[k] = append(index[k], i)
	}

	out := models.NewTable(header...)
	for _, lrow := range left.Rows {
		k := joinKey(lrow[lk])
		for _, ri := range index[k] {
			rrow := right.Rows[ri]
			row := make([]string, 0, len(header))
			row = append(row, k)
			for _, c := range leftCols {
				row = append(row, lrow[c])
			}
			for _, c := range rightCols {
				row = append(row, rrow[c])
			}
			out.Rows = append(out.Rows, row)
		}
	}
	return out, nil
}
