// Package units provides the unit-aware quantity and money values used by
// Rhodium24 project records, together with their JSON encodings.
package units

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownUnit is returned when a unit name or symbol is not registered.
	ErrUnknownUnit = errors.New("unknown unit")
	// ErrIncompatibleUnits is returned when converting between units of different kinds.
	ErrIncompatibleUnits = errors.New("incompatible units")
	// ErrCurrencyMismatch is returned when a money value is not in the fixed currency.
	ErrCurrencyMismatch = errors.New("currency mismatch")
	// ErrMissingField is returned when a required member of an encoded value is absent.
	ErrMissingField = errors.New("missing field")
	// ErrZeroDenominator is returned when a rate is evaluated against a zero quantity.
	ErrZeroDenominator = errors.New("zero denominator")
)

// Kind is the physical dimension a unit measures.
type Kind string

const (
	Length   Kind = "Length"
	Area     Kind = "Area"
	Volume   Kind = "Volume"
	Mass     Kind = "Mass"
	Duration Kind = "Duration"
	Count    Kind = "Count"
)

// Unit is a unit of measurement. factor converts a value in this unit to the
// base unit of its kind.
type Unit struct {
	Kind   Kind
	Name   string
	Symbol string
	factor float64
}

// String returns the unit symbol.
func (u Unit) String() string {
	return u.Symbol
}

// QualifiedName returns the name in the "<Kind>Unit.<Name>" form,
// e.g. LengthUnit.Meter.
func (u Unit) QualifiedName() string {
	return string(u.Kind) + "Unit." + u.Name
}

// IsZero reports whether u is the zero Unit.
func (u Unit) IsZero() bool {
	return u == Unit{}
}

var (
	Meter      = Unit{Kind: Length, Name: "Meter", Symbol: "m", factor: 1}
	Millimeter = Unit{Kind: Length, Name: "Millimeter", Symbol: "mm", factor: 1e-3}
	Centimeter = Unit{Kind: Length, Name: "Centimeter", Symbol: "cm", factor: 1e-2}
	Kilometer  = Unit{Kind: Length, Name: "Kilometer", Symbol: "km", factor: 1e3}
	Inch       = Unit{Kind: Length, Name: "Inch", Symbol: "in", factor: 0.0254}
	Foot       = Unit{Kind: Length, Name: "Foot", Symbol: "ft", factor: 0.3048}

	SquareMeter      = Unit{Kind: Area, Name: "SquareMeter", Symbol: "m²", factor: 1}
	SquareCentimeter = Unit{Kind: Area, Name: "SquareCentimeter", Symbol: "cm²", factor: 1e-4}
	SquareMillimeter = Unit{Kind: Area, Name: "SquareMillimeter", Symbol: "mm²", factor: 1e-6}

	CubicMeter      = Unit{Kind: Volume, Name: "CubicMeter", Symbol: "m³", factor: 1}
	CubicCentimeter = Unit{Kind: Volume, Name: "CubicCentimeter", Symbol: "cm³", factor: 1e-6}
	CubicMillimeter = Unit{Kind: Volume, Name: "CubicMillimeter", Symbol: "mm³", factor: 1e-9}
	Liter           = Unit{Kind: Volume, Name: "Liter", Symbol: "l", factor: 1e-3}

	Kilogram = Unit{Kind: Mass, Name: "Kilogram", Symbol: "kg", factor: 1}
	Gram     = Unit{Kind: Mass, Name: "Gram", Symbol: "g", factor: 1e-3}
	Tonne    = Unit{Kind: Mass, Name: "Tonne", Symbol: "t", factor: 1e3}
	Pound    = Unit{Kind: Mass, Name: "Pound", Symbol: "lb", factor: 0.45359237}

	Millisecond = Unit{Kind: Duration, Name: "Millisecond", Symbol: "ms", factor: 1e-3}
	Second      = Unit{Kind: Duration, Name: "Second", Symbol: "s", factor: 1}
	Minute      = Unit{Kind: Duration, Name: "Minute", Symbol: "min", factor: 60}
	Hour        = Unit{Kind: Duration, Name: "Hour", Symbol: "h", factor: 3600}
	Day         = Unit{Kind: Duration, Name: "Day", Symbol: "d", factor: 86400}

	Piece = Unit{Kind: Count, Name: "Piece", Symbol: "pcs", factor: 1}
)

// registry indexes every unit by symbol and by lower-cased name.
var registry = struct {
	symbols map[string]Unit
	names   map[string]Unit
}{
	symbols: make(map[string]Unit),
	names:   make(map[string]Unit),
}

func init() {
	all := []Unit{
		Meter, Millimeter, Centimeter, Kilometer, Inch, Foot,
		SquareMeter, SquareCentimeter, SquareMillimeter,
		CubicMeter, CubicCentimeter, CubicMillimeter, Liter,
		Kilogram, Gram, Tonne, Pound,
		Millisecond, Second, Minute, Hour, Day,
		Piece,
	}

	for _, u := range all {
		registry.symbols[u.Symbol] = u
		registry.names[strings.ToLower(u.Name)] = u
		registry.names[strings.ToLower(u.QualifiedName())] = u
	}

	// ASCII spellings of the superscript symbols.
	aliases := map[string]Unit{
		"m2": SquareMeter, "cm2": SquareCentimeter, "mm2": SquareMillimeter,
		"m3": CubicMeter, "cm3": CubicCentimeter, "mm3": CubicMillimeter,
		"L": Liter, "pc": Piece,
	}
	for s, u := range aliases {
		registry.symbols[s] = u
	}
}

// ParseUnit resolves s as a unit symbol (case-sensitive, "mm"), a unit name
// ("Millimeter") or a qualified name ("LengthUnit.Millimeter"); names are
// matched case-insensitively.
func ParseUnit(s string) (Unit, error) {
	s = strings.TrimSpace(s)
	if u, ok := registry.symbols[s]; ok {
		return u, nil
	}
	if u, ok := registry.names[strings.ToLower(s)]; ok {
		return u, nil
	}

	return Unit{}, fmt.Errorf("%w: %q", ErrUnknownUnit, s)
}

// MustParseUnit is like ParseUnit but panics on error.
func MustParseUnit(s string) Unit {
	u, err := ParseUnit(s)
	if err != nil {
		panic(err)
	}

	return u
}
