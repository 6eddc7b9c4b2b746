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

// SampleOrder returns the column permutation that puts the samples of present
// into the order given by order: first every sample found in both, in order's
// order, then every sample of present missing from order, in its original
// relative order. Samples in order but not present are ignored. Each element
// of the result is an index into present.
func SampleOrder(present, order []string) []int {
	pos := make(map[string]int, len(present))
	for i, s := range present {
		if _, dup := pos[s]; !dup {
			pos[s] = i
		}
	}

	perm := make([]int, 0, len(present))
	used := make(map[int]bool, len(present))

	for _, s := range order {
		i, ok := pos[s]
		if !ok || used[i] {
			continue
		}

		perm = append(perm, i)
		used[i] = true
	}

	for i := range present {
		if !used[i] {
			perm = append(perm, i)
		}
	}

	return perm
}

// Reorder rearranges the sample columns of the Table according to the global
// sample order, as per SampleOrder(). The label column stays first. Applying
// the same order twice is a no-op.
func (t *Table) Reorder(order []string) {
	perm := SampleOrder(t.Samples, order)

	samples := make([]string, len(perm))
	for i, p := range perm {
		samples[i] = t.Samples[p]
	}

	for r := range t.Rows {
		values := make([]Value, len(perm))
		for i, p := range perm {
			values[i] = t.Rows[r].Values[p]
		}

		t.Rows[r].Values = values
	}

	t.Samples = samples
}
