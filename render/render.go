// Package render writes sampled expressions for people and programs to read.
package render

import (
	"bufio"
	"encoding/json"
	"io"
	"strconv"

	"github.com/zephyrtronium/fplot"
)

// Table writes one point per line, x and y separated by a tab, with
// "undefined" in place of y where the expression has no value.
func Table(w io.Writer, pts []fplot.Point) error {
	bw := bufio.NewWriter(w)
	var b []byte
	for _, p := range pts {
		b = strconv.AppendFloat(b[:0], p.X, 'g', -1, 64)
		b = append(b, '\t')
		if p.Defined {
			b = strconv.AppendFloat(b, p.Y, 'g', -1, 64)
		} else {
			b = append(b, "undefined"...)
		}
		b = append(b, '\n')
		if _, err := bw.Write(b); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// JSON writes the points as a JSON array of {"x": x, "y": y} objects, with
// null y where the expression has no value.
func JSON(w io.Writer, pts []fplot.Point) error {
	if pts == nil {
		pts = []fplot.Point{}
	}
	return json.NewEncoder(w).Encode(pts)
}
