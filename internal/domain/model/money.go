package model

import "github.com/shopspring/decimal"

// MoneyPlaces is the number of decimal places every monetary result is rounded to.
const MoneyPlaces = 2

// RoundMoney rounds half away from zero to MoneyPlaces.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// NonNegative returns zero for negative amounts.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// TruncateMoney drops fractions of a cent. Discounts use it so they never exceed
// their exact bound.
func TruncateMoney(d decimal.Decimal) decimal.Decimal {
	return d.Truncate(MoneyPlaces)
}

// Amount is a decimal that encodes as a JSON number with MoneyPlaces decimals.
// Decoding accepts numbers and quoted strings.
type Amount decimal.Decimal

// NewAmount wraps d.
func NewAmount(d decimal.Decimal) Amount {
	return Amount(d)
}

// Decimal unwraps the amount.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.Decimal(a)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(a).StringFixed(MoneyPlaces)), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*a = Amount(d)
	return nil
}
