package booking

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Upper bounds keep MaxPriceCents*MaxQuantity, and sums over many bookings, inside int64.
const (
	MaxPriceCents int64 = 1_000_000_000
	MaxQuantity         = 10_000
)

// Money is an amount in minor units (cents).
type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativePrice
	}
	if cents > MaxPriceCents {
		return Money{}, ErrPriceTooLarge
	}
	return Money{cents: cents}, nil
}

// NewMoneyFromAmount converts a decimal amount such as 299.99 into cents,
// rounding half away from zero at the second decimal place.
func NewMoneyFromAmount(amount float64) (Money, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Money{}, errors.New("amount must be a finite number")
	}
	cents := math.Round(amount * 100)
	if cents < 0 {
		return Money{}, ErrNegativePrice
	}
	if cents > float64(MaxPriceCents) {
		return Money{}, ErrPriceTooLarge
	}
	return NewMoney(int64(cents))
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Amount() float64 {
	return float64(m.cents) / 100.0
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) Times(n int) Money {
	return Money{cents: m.cents * int64(n)}
}

func (m Money) String() string {
	whole := m.cents / 100
	frac := m.cents % 100
	return strconv.FormatInt(whole, 10) + "." + leftPad2(frac)
}

func leftPad2(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) < 2 {
		s = strings.Repeat("0", 2-len(s)) + s
	}
	return s
}

type Quantity struct {
	value int
}

func NewQuantity(n int) (Quantity, error) {
	if n < 1 || n > MaxQuantity {
		return Quantity{}, ErrInvalidQuantity
	}
	return Quantity{value: n}, nil
}

func (q Quantity) Int() int {
	return q.value
}

// EventRef is the catalog data denormalised onto a booking at creation time.
type EventRef struct {
	EventID            string
	EventName          string
	CategoryID         string
	CategoryName       string
	TicketCategoryID   string
	TicketCategoryName string
}
