package units

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency is the ISO 4217 code every money value is held in.
const Currency = "EUR"

// Money is a decimal amount in a currency.
type Money struct {
	Amount   decimal.Decimal
	Currency string
}

// Euro constructs a Money in [Currency].
func Euro(amount decimal.Decimal) Money {
	return Money{Amount: amount, Currency: Currency}
}

// ParseEuro constructs a Money in [Currency] from a decimal string.
func ParseEuro(amount string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("money: %w", err)
	}

	return Euro(d), nil
}

// Equal reports whether m and o hold the same amount in the same currency.
func (m Money) Equal(o Money) bool {
	return m.Currency == o.Currency && m.Amount.Equal(o.Amount)
}

// IsZero reports whether m is unset.
func (m Money) IsZero() bool {
	return m.Currency == "" && m.Amount.IsZero()
}

func (m Money) String() string {
	return m.Amount.StringFixed(2) + " " + m.Currency
}

type moneyJSON struct {
	Amount   *decimal.Decimal `json:"amount"`
	Currency *string          `json:"currency,omitempty"`
}

// MarshalJSON encodes m as {"amount":<number>,"currency":"EUR"}.
func (m Money) MarshalJSON() ([]byte, error) {
	currency := m.Currency
	if currency == "" {
		currency = Currency
	}

	cur, err := json.Marshal(currency)
	if err != nil {
		return nil, err
	}

	var b bytes.Buffer
	b.WriteString(`{"amount":`)
	b.WriteString(m.Amount.String())
	b.WriteString(`,"currency":`)
	b.Write(cur)
	b.WriteByte('}')

	return b.Bytes(), nil
}

// UnmarshalJSON decodes {"amount":<number|string>,"currency":"EUR"} or a bare
// amount. An absent currency defaults to [Currency]; any other currency is
// rejected with [ErrCurrencyMismatch]. A JSON null leaves m untouched.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] != '{' {
		var d decimal.Decimal
		if err := d.UnmarshalJSON(data); err != nil {
			return fmt.Errorf("money: %w", err)
		}
		*m = Euro(d)
		return nil
	}

	var aux moneyJSON
	if err := json.Unmarshal(data, &aux); err != nil {
		return fmt.Errorf("money: %w", err)
	}

	if aux.Amount == nil {
		return fmt.Errorf("money: %w: amount", ErrMissingField)
	}
	if aux.Currency != nil && *aux.Currency != Currency {
		return fmt.Errorf("money: %w: got %q, want %q", ErrCurrencyMismatch, *aux.Currency, Currency)
	}

	*m = Euro(*aux.Amount)

	return nil
}
