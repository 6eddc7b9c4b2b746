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

package sortspec

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wtsi-hgi/taxa-organiser/metadata"
)

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrIDField       = Error("the sample id column can't be used as a sort field")
	ErrBadValueOrder = Error("value order must look like field=value1,value2")

	// SiteField is the metadata field whose values are always ordered by
	// SiteOrderBase.
	SiteField = "site"
)

// SiteOrderBase is the conventional order of sampling sites. Sites found in
// metadata but not listed here are sorted after these.
var SiteOrderBase = []string{ //nolint:gochecknoglobals
	"BSSG", "BSNS", "BSIG", "BSIGa", "BSIGb", "BSOC", "BSES",
	"DGGW", "DGDS", "DGJY", "DGGB", "DGDC", "DGYS", "DGYSa", "DGYSb",
	"USOS", "USYY", "USYJ",
	"GSGA", "GCGD",
	"MGYS", "MGYSb", "MGYSa", "MGYSc",
	"ADAS", "ADPC",
	"YCGH", "YCDG",
	"UJGN", "CGSJ",
	"GHGH", "GHGHa", "GHGHb", "GHHM", "GHJY",
	"MYSN", "SCHG",
	"YSDM", "YSYS",
	"JJNG", "JJYS",
	"CWMS", "CWSS",
}

// FieldOrder is a metadata field and its values, highest priority first.
type FieldOrder struct {
	Field  string
	Values []string
}

// Spec is an ordered list of FieldOrders, highest priority field first.
type Spec []FieldOrder

// Fields returns the fields of the Spec in priority order.
func (s Spec) Fields() []string {
	fields := make([]string, len(s))

	for i, fo := range s {
		fields[i] = fo.Field
	}

	return fields
}

// Resolve builds a Spec from a priority order of descriptive metadata fields
// and the user's desired value order for each of those fields.
//
// A field with no (or an empty) entry in valueOrders is skipped and will not
// be used for sorting, except for the "site" field, which always gets its
// conventional order from SiteOrder().
func Resolve(m *metadata.Metadata, priority []string, valueOrders map[string][]string) (Spec, error) {
	spec := make(Spec, 0, len(priority))
	done := make(map[string]bool, len(priority))

	for _, field := range priority {
		if done[field] {
			continue
		}

		done[field] = true

		if field == m.IDColumn {
			return nil, ErrIDField
		}

		if !m.HasField(field) {
			return nil, fmt.Errorf("%w '%s'", metadata.ErrMissingColumn, field)
		}

		if isSiteField(field) {
			order, err := SiteOrder(m, field)
			if err != nil {
				return nil, err
			}

			spec = append(spec, FieldOrder{Field: field, Values: order})

			continue
		}

		values := dedup(valueOrders[field])
		if len(values) == 0 {
			continue
		}

		spec = append(spec, FieldOrder{Field: field, Values: values})
	}

	return spec, nil
}

func isSiteField(field string) bool {
	return strings.EqualFold(field, SiteField)
}

func dedup(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))

	for _, v := range values {
		if seen[v] {
			continue
		}

		seen[v] = true

		out = append(out, v)
	}

	return out
}

// SiteOrder returns SiteOrderBase followed by any other values of the given
// field in the order they first appear in the metadata.
func SiteOrder(m *metadata.Metadata, field string) ([]string, error) {
	values, err := m.Values(field)
	if err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(SiteOrderBase))
	for _, site := range SiteOrderBase {
		known[site] = true
	}

	order := append([]string{}, SiteOrderBase...)

	for _, v := range values {
		if !known[v] {
			order = append(order, v)
		}
	}

	return order, nil
}

// GlobalOrder returns every unique sample id in the metadata, sorted by the
// rank of each sample's value for each field of the spec, in priority order.
// Values not listed for a field rank after all listed values, and samples
// that compare equal keep their metadata order.
func GlobalOrder(m *metadata.Metadata, spec Spec) ([]string, error) {
	ids := m.SampleIDs()

	keys := make(map[string][]int, len(ids))
	for _, id := range ids {
		keys[id] = make([]int, len(spec))
	}

	for f, fo := range spec {
		lookup, err := m.Lookup(fo.Field)
		if err != nil {
			return nil, err
		}

		ranks := make(map[string]int, len(fo.Values))

		for i, v := range fo.Values {
			if _, dup := ranks[v]; !dup {
				ranks[v] = i
			}
		}

		for _, id := range ids {
			rank, ok := ranks[lookup[id]]
			if !ok {
				rank = len(fo.Values)
			}

			keys[id][f] = rank
		}
	}

	sort.SliceStable(ids, func(i, j int) bool {
		return lessKey(keys[ids[i]], keys[ids[j]])
	})

	return ids, nil
}

func lessKey(a, b []int) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}

	return false
}
