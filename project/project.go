// Package project models the Rhodium24 project record and its decoding policy.
package project

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/adamwoolhether/rhodium/units"
	"github.com/shopspring/decimal"
)

var (
	// ErrEmptyPayload is returned when the payload holds no project.
	ErrEmptyPayload = errors.New("empty project payload")
	// ErrTrailingData is returned when the payload continues after the project.
	ErrTrailingData = errors.New("trailing data after project")
)

// Decode reads one project from r. Type metadata such as "$type" and other
// unknown members are ignored; absent members stay unset. Any malformed or
// mismatched member fails the whole decode.
func Decode(r io.Reader) (*Project, error) {
	d := json.NewDecoder(r)

	var raw json.RawMessage
	if err := d.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyPayload
		}
		return nil, fmt.Errorf("reading project: %w", err)
	}

	if _, err := d.Token(); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}

	return Unmarshal(raw)
}

// Unmarshal decodes a project from data using the same policy as Decode.
func Unmarshal(data []byte) (*Project, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, ErrEmptyPayload
	}

	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decoding project: %w", err)
	}

	return &p, nil
}

// Encode writes p to w as JSON, omitting unset members.
func Encode(w io.Writer, p *Project) error {
	if err := json.NewEncoder(w).Encode(p); err != nil {
		return fmt.Errorf("encoding project: %w", err)
	}

	return nil
}

// FileNames returns the names of all documents attached to the project and
// its articles, in order of appearance, without duplicates.
func (p *Project) FileNames() []string {
	seen := make(map[string]struct{})
	var names []string

	add := func(docs []Document) {
		for _, d := range docs {
			if d.FileName == "" {
				continue
			}
			if _, ok := seen[d.FileName]; ok {
				continue
			}
			seen[d.FileName] = struct{}{}
			names = append(names, d.FileName)
		}
	}

	add(p.Documents)
	for _, a := range p.Articles {
		add(a.Documents)
	}

	return names
}

// TotalWeight returns the weight of a single piece times the ordered quantity.
func (a Article) TotalWeight() (units.Quantity, bool) {
	if a.Weight == nil {
		return units.Quantity{}, false
	}

	return units.NewQuantity(a.Weight.Value*float64(a.Quantity), a.Weight.Unit), true
}

// MaterialCost prices the total weight of the article at its material price.
func (a Article) MaterialCost() (units.Money, error) {
	if a.Material == nil || a.Material.Price == nil {
		return units.Money{}, errors.New("article has no material price")
	}

	weight, ok := a.TotalWeight()
	if !ok {
		return units.Money{}, errors.New("article has no weight")
	}

	return a.Material.Price.PriceFor(weight)
}

// OperationsCost sums the cost of every operation that carries one.
func (a Article) OperationsCost() units.Money {
	total := units.Euro(decimal.Zero)
	for _, op := range a.Operations {
		if op.Cost != nil {
			total.Amount = total.Amount.Add(op.Cost.Amount)
		}
	}

	return total
}
