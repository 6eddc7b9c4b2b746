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
	"os"
	"strings"

	"github.com/wtsi-hgi/taxa-organiser/metadata"
	"gopkg.in/yaml.v3"
)

// Request is a user's choice of sort fields and value orders, before it is
// resolved against metadata.
type Request struct {
	Priority []FieldRequest `yaml:"priority"`
}

// FieldRequest is one entry in a Request's priority list. Leaving Values
// empty means the field will be skipped (unless it is the site field).
type FieldRequest struct {
	Field  string   `yaml:"field"`
	Values []string `yaml:"values,omitempty"`
}

// Load reads a YAML sort spec request file.
func Load(path string) (*Request, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	req := &Request{}

	if err = yaml.Unmarshal(data, req); err != nil {
		return nil, fmt.Errorf("invalid sort spec %s: %w", path, err)
	}

	return req, nil
}

// NewRequest creates a Request from a priority list of fields and value
// orders given in the form "field=value1,value2".
func NewRequest(priority, valueOrders []string) (*Request, error) {
	orders := make(map[string][]string, len(valueOrders))

	for _, vo := range valueOrders {
		field, values, err := parseValueOrder(vo)
		if err != nil {
			return nil, err
		}

		orders[field] = values
	}

	req := &Request{Priority: make([]FieldRequest, len(priority))}

	for i, field := range priority {
		req.Priority[i] = FieldRequest{Field: field, Values: orders[field]}
	}

	return req, nil
}

func parseValueOrder(vo string) (string, []string, error) {
	field, list, found := strings.Cut(vo, "=")

	field = strings.TrimSpace(field)
	if !found || field == "" {
		return "", nil, fmt.Errorf("%w: %s", ErrBadValueOrder, vo)
	}

	var values []string

	for _, v := range strings.Split(list, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}

	return field, values, nil
}

// Split returns the priority order and the value orders of the Request in the
// form Resolve() takes.
func (r *Request) Split() ([]string, map[string][]string) {
	priority := make([]string, 0, len(r.Priority))
	orders := make(map[string][]string, len(r.Priority))

	for _, fr := range r.Priority {
		priority = append(priority, fr.Field)

		if _, exists := orders[fr.Field]; !exists {
			orders[fr.Field] = fr.Values
		}
	}

	return priority, orders
}

// Marshal returns the Request as YAML.
func (r *Request) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}

// Template returns a Request listing every descriptive field of the metadata
// with all of its values in first-seen order, ready for a user to edit. The
// site field is listed without values since its order is fixed.
func Template(m *metadata.Metadata) (*Request, error) {
	fields := m.Fields()
	req := &Request{Priority: make([]FieldRequest, len(fields))}

	for i, field := range fields {
		req.Priority[i].Field = field

		if isSiteField(field) {
			continue
		}

		values, err := m.Values(field)
		if err != nil {
			return nil, err
		}

		req.Priority[i].Values = values
	}

	return req, nil
}
