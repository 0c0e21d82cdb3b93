package units

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Quantity is a numeric value paired with its unit.
type Quantity struct {
	Value float64
	Unit  Unit
}

// NewQuantity constructs a Quantity.
func NewQuantity(value float64, unit Unit) Quantity {
	return Quantity{Value: value, Unit: unit}
}

// In converts q to unit, which must be of the same kind.
func (q Quantity) In(unit Unit) (Quantity, error) {
	if q.Unit.Kind != unit.Kind {
		return Quantity{}, fmt.Errorf("%w: %s to %s", ErrIncompatibleUnits, q.Unit.Kind, unit.Kind)
	}
	if q.Unit == unit {
		return q, nil
	}

	return Quantity{Value: q.Value * q.Unit.factor / unit.factor, Unit: unit}, nil
}

// Base returns the value of q expressed in the base unit of its kind.
func (q Quantity) Base() float64 {
	return q.Value * q.Unit.factor
}

// Equal reports whether q and o describe the same amount of the same kind,
// regardless of the unit each is expressed in.
func (q Quantity) Equal(o Quantity) bool {
	if q.Unit.Kind != o.Unit.Kind {
		return false
	}
	if q.Unit == o.Unit {
		return q.Value == o.Value
	}

	a, b := q.Base(), o.Base()
	return math.Abs(a-b) <= 1e-9*math.Max(math.Abs(a), math.Abs(b))
}

// IsZero reports whether q is unset.
func (q Quantity) IsZero() bool {
	return q.Value == 0 && q.Unit.IsZero()
}

func (q Quantity) String() string {
	return strconv.FormatFloat(q.Value, 'f', -1, 64) + " " + q.Unit.Symbol
}

type quantityJSON struct {
	Value *float64 `json:"value"`
	Unit  *string  `json:"unit"`
}

// MarshalJSON encodes q as {"value":<number>,"unit":"<symbol>"}.
func (q Quantity) MarshalJSON() ([]byte, error) {
	if q.Unit.IsZero() {
		return nil, fmt.Errorf("%w: quantity has no unit", ErrMissingField)
	}

	return json.Marshal(quantityJSON{Value: &q.Value, Unit: &q.Unit.Symbol})
}

// UnmarshalJSON decodes {"value":<number>,"unit":"<unit>"}. Member names are
// matched case-insensitively and the unit may be a symbol or a qualified
// name such as "LengthUnit.Meter". A JSON null leaves q untouched.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var aux quantityJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("quantity: %w", err)
	}

	if aux.Value == nil {
		return fmt.Errorf("quantity: %w: value", ErrMissingField)
	}
	if aux.Unit == nil {
		return fmt.Errorf("quantity: %w: unit", ErrMissingField)
	}

	unit, err := ParseUnit(*aux.Unit)
	if err != nil {
		return fmt.Errorf("quantity: %w", err)
	}

	*q = Quantity{Value: *aux.Value, Unit: unit}

	return nil
}
