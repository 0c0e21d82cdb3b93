package units

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// QuantityPerQuantity is a ratio of two quantities, such as a feed rate in
// millimeters per minute or a yield in pieces per hour.
type QuantityPerQuantity struct {
	Numerator   Quantity
	Denominator Quantity
}

// Ratio returns the numerator value divided by the denominator value,
// each in its own unit.
func (r QuantityPerQuantity) Ratio() (float64, error) {
	if r.Denominator.Value == 0 {
		return 0, ErrZeroDenominator
	}

	return r.Numerator.Value / r.Denominator.Value, nil
}

// For returns the numerator amount that corresponds to q, converting q into
// the denominator unit first.
func (r QuantityPerQuantity) For(q Quantity) (Quantity, error) {
	in, err := q.In(r.Denominator.Unit)
	if err != nil {
		return Quantity{}, err
	}

	ratio, err := r.Ratio()
	if err != nil {
		return Quantity{}, err
	}

	return Quantity{Value: ratio * in.Value, Unit: r.Numerator.Unit}, nil
}

// Equal reports whether r and o hold equal numerators and denominators.
func (r QuantityPerQuantity) Equal(o QuantityPerQuantity) bool {
	return r.Numerator.Equal(o.Numerator) && r.Denominator.Equal(o.Denominator)
}

func (r QuantityPerQuantity) String() string {
	return r.Numerator.String() + "/" + r.Denominator.String()
}

type quantityPerQuantityJSON struct {
	Numerator   *Quantity `json:"numerator"`
	Denominator *Quantity `json:"denominator"`
}

// MarshalJSON encodes r as {"numerator":<quantity>,"denominator":<quantity>}.
func (r QuantityPerQuantity) MarshalJSON() ([]byte, error) {
	return json.Marshal(quantityPerQuantityJSON{Numerator: &r.Numerator, Denominator: &r.Denominator})
}

// UnmarshalJSON decodes {"numerator":<quantity>,"denominator":<quantity>}.
func (r *QuantityPerQuantity) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var aux quantityPerQuantityJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("quantity per quantity: %w", err)
	}

	if aux.Numerator == nil {
		return fmt.Errorf("quantity per quantity: %w: numerator", ErrMissingField)
	}
	if aux.Denominator == nil {
		return fmt.Errorf("quantity per quantity: %w: denominator", ErrMissingField)
	}

	*r = QuantityPerQuantity{Numerator: *aux.Numerator, Denominator: *aux.Denominator}

	return nil
}

// /////////////////////////////////////////////////////////////////////////////////////////////

// MoneyPerQuantity is a price rate, such as a material price per kilogram.
type MoneyPerQuantity struct {
	Money    Money
	Quantity Quantity
}

// UnitPrice returns the price of one unit of the rate's quantity unit.
func (r MoneyPerQuantity) UnitPrice() (Money, error) {
	if r.Quantity.Value == 0 {
		return Money{}, ErrZeroDenominator
	}

	return Money{
		Amount:   r.Money.Amount.Div(decimal.NewFromFloat(r.Quantity.Value)),
		Currency: r.Money.Currency,
	}, nil
}

// PriceFor returns the price of q, converting q into the rate's unit first.
func (r MoneyPerQuantity) PriceFor(q Quantity) (Money, error) {
	if r.Quantity.Value == 0 {
		return Money{}, ErrZeroDenominator
	}

	in, err := q.In(r.Quantity.Unit)
	if err != nil {
		return Money{}, err
	}

	amount := r.Money.Amount.Mul(decimal.NewFromFloat(in.Value)).Div(decimal.NewFromFloat(r.Quantity.Value))

	return Money{Amount: amount, Currency: r.Money.Currency}, nil
}

// Equal reports whether r and o hold equal money and quantity parts.
func (r MoneyPerQuantity) Equal(o MoneyPerQuantity) bool {
	return r.Money.Equal(o.Money) && r.Quantity.Equal(o.Quantity)
}

func (r MoneyPerQuantity) String() string {
	return r.Money.String() + "/" + r.Quantity.String()
}

type moneyPerQuantityJSON struct {
	Money    *Money    `json:"money"`
	Quantity *Quantity `json:"quantity"`
}

// MarshalJSON encodes r as {"money":<money>,"quantity":<quantity>}.
func (r MoneyPerQuantity) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyPerQuantityJSON{Money: &r.Money, Quantity: &r.Quantity})
}

// UnmarshalJSON decodes {"money":<money>,"quantity":<quantity>}.
func (r *MoneyPerQuantity) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	var aux moneyPerQuantityJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("money per quantity: %w", err)
	}

	if aux.Money == nil {
		return fmt.Errorf("money per quantity: %w: money", ErrMissingField)
	}
	if aux.Quantity == nil {
		return fmt.Errorf("money per quantity: %w: quantity", ErrMissingField)
	}

	*r = MoneyPerQuantity{Money: *aux.Money, Quantity: *aux.Quantity}

	return nil
}
