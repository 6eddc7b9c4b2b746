/*******************************************************************************
 * Copyright (c) 2025 Genome Research Ltd.
 *
 * Permission is hereby granted, free of charge, to any person obtaining
 * a copy of this software and associated documentation files (the
 * "Software"), to deal in the Software without restriction, including
 * without limitation the rights to use, copy, modify, merge, publish,
 * distribute, sublicense, and/or sell copies of the Software, and to
 * permit persons to whom the Software is furnished to do so, subject to
 * the following conditions:
 *
 * The above copyright notice and this permission notice shall be included
 * in all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
 * EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
 * MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.
 * IN NO EVENT SHALL THE AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY
 * CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT,
 * TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN CONNECTION WITH THE
 * SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
 ******************************************************************************/

package table

import (
	"math"
	"strconv"
	"strings"
)

// Value is a single cell of a Table. A Value is numeric, text, or blank (the
// zero Value).
type Value struct {
	Text    string
	Number  float64
	Numeric bool
}

// Number returns a numeric Value.
func Number(f float64) Value {
	return Value{Number: f, Numeric: true}
}

// Text returns a text Value. An empty string gives a blank Value.
func Text(s string) Value {
	return Value{Text: s}
}

// Parse interprets a raw spreadsheet cell: empty and NaN cells are blank,
// cells that parse as floats are numeric and anything else is text.
func Parse(raw string) Value {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Value{}
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Text(raw)
	}

	if math.IsNaN(f) {
		return Value{}
	}

	return Number(f)
}

// IsBlank tells you if this Value holds nothing.
func (v Value) IsBlank() bool {
	return !v.Numeric && v.Text == ""
}

// Float returns the numeric content of the Value, treating text and blank
// Values as 0.
func (v Value) Float() float64 {
	if v.Numeric {
		return v.Number
	}

	return 0
}

// String formats the Value the way it would appear in a text export.
func (v Value) String() string {
	if v.Numeric {
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	}

	return v.Text
}

// Numbers returns a row of numeric Values.
func Numbers(fs []float64) []Value {
	vals := make([]Value, len(fs))

	for i, f := range fs {
		vals[i] = Number(f)
	}

	return vals
}

// Floats returns the Float() of each of the given Values.
func Floats(vals []Value) []float64 {
	fs := make([]float64, len(vals))

	for i, v := range vals {
		fs[i] = v.Float()
	}

	return fs
}
