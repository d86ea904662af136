package domain

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/token_ledger/internal/apperrors"
)

const (
	// MaxPrecision is the largest number of decimal places a symbol may carry.
	MaxPrecision = 18
	// MaxSymbolCodeLength is the longest permitted symbol code.
	MaxSymbolCodeLength = 7
	// MaxAmount bounds the magnitude of any valid Amount (2^62 - 1).
	MaxAmount int64 = 1<<62 - 1
)

var quantityPattern = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?$`)

// Symbol identifies a token: a short uppercase code plus its decimal precision.
type Symbol struct {
	Precision uint8  `json:"precision"`
	Code      string `json:"code"` // e.g. "TOK"
}

// NewSymbol creates a Symbol. It does not validate; see IsValid.
func NewSymbol(precision uint8, code string) Symbol {
	return Symbol{Precision: precision, Code: code}
}

// IsValid reports whether the code is 1-7 characters of A-Z and the precision is in range.
func (s Symbol) IsValid() bool {
	if len(s.Code) == 0 || len(s.Code) > MaxSymbolCodeLength {
		return false
	}
	for _, r := range s.Code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return s.Precision <= MaxPrecision
}

// String renders the symbol as "precision,CODE".
func (s Symbol) String() string {
	return fmt.Sprintf("%d,%s", s.Precision, s.Code)
}

// ParseSymbol parses the "precision,CODE" form.
func ParseSymbol(str string) (Symbol, error) {
	parts := strings.SplitN(strings.TrimSpace(str), ",", 2)
	if len(parts) != 2 {
		return Symbol{}, fmt.Errorf("%w: %q", apperrors.ErrInvalidSymbol, str)
	}
	precision, err := strconv.ParseUint(parts[0], 10, 8)
	if err != nil {
		return Symbol{}, fmt.Errorf("%w: bad precision in %q", apperrors.ErrInvalidSymbol, str)
	}
	return NewSymbol(uint8(precision), parts[1]), nil
}

// Amount is a signed fixed-point quantity of a Symbol, stored in the symbol's
// smallest unit: 1.5000 TOK is Amount{Amount: 15000, Symbol: 4,TOK}.
type Amount struct {
	Amount int64  `json:"amount"`
	Symbol Symbol `json:"symbol"`
}

// NewAmount creates an Amount. It does not validate; see IsValid.
func NewAmount(amount int64, symbol Symbol) Amount {
	return Amount{Amount: amount, Symbol: symbol}
}

// ZeroOf returns a zero Amount of the given symbol.
func ZeroOf(symbol Symbol) Amount {
	return Amount{Symbol: symbol}
}

// IsAmountWithinRange reports whether |amount| <= MaxAmount.
func (a Amount) IsAmountWithinRange() bool {
	return -MaxAmount <= a.Amount && a.Amount <= MaxAmount
}

// IsValid reports whether the amount is within range and its symbol is well-formed.
func (a Amount) IsValid() bool {
	return a.IsAmountWithinRange() && a.Symbol.IsValid()
}

// Add returns a + b. Both must carry the same symbol and the result must stay in range.
func (a Amount) Add(b Amount) (Amount, error) {
	if a.Symbol != b.Symbol {
		return Amount{}, fmt.Errorf("%w: %s vs %s", apperrors.ErrSymbolMismatch, a.Symbol, b.Symbol)
	}
	sum := NewAmount(a.Amount+b.Amount, a.Symbol)
	if !sum.IsAmountWithinRange() {
		return Amount{}, fmt.Errorf("%w: addition overflow", apperrors.ErrInvalidAmount)
	}
	return sum, nil
}

// Sub returns a - b. Both must carry the same symbol and the result must stay in range.
func (a Amount) Sub(b Amount) (Amount, error) {
	if a.Symbol != b.Symbol {
		return Amount{}, fmt.Errorf("%w: %s vs %s", apperrors.ErrSymbolMismatch, a.Symbol, b.Symbol)
	}
	diff := NewAmount(a.Amount-b.Amount, a.Symbol)
	if !diff.IsAmountWithinRange() {
		return Amount{}, fmt.Errorf("%w: subtraction underflow", apperrors.ErrInvalidAmount)
	}
	return diff, nil
}

// Decimal returns the amount scaled by its precision.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.New(a.Amount, -int32(a.Symbol.Precision))
}

// String renders the amount as "100.0000 TOK".
func (a Amount) String() string {
	return a.Decimal().StringFixed(int32(a.Symbol.Precision)) + " " + a.Symbol.Code
}

// ParseAmount parses the "100.0000 TOK" form. The number of fraction digits sets
// the precision. Only numbers that do not fit an int64 are rejected: a malformed code
// or a magnitude above MaxAmount yields an Amount whose IsValid reports false, so the
// ledger reports it in its own check order.
func ParseAmount(str string) (Amount, error) {
	fields := strings.Fields(str)
	if len(fields) != 2 {
		return Amount{}, fmt.Errorf("%w: expected \"<number> <CODE>\", got %q", apperrors.ErrInvalidAmount, str)
	}
	number, code := fields[0], fields[1]
	if !quantityPattern.MatchString(number) {
		return Amount{}, fmt.Errorf("%w: malformed number %q", apperrors.ErrInvalidAmount, number)
	}

	precision := 0
	if dot := strings.IndexByte(number, '.'); dot >= 0 {
		precision = len(number) - dot - 1
	}
	if precision > 255 {
		return Amount{}, fmt.Errorf("%w: precision %d too large", apperrors.ErrInvalidSymbol, precision)
	}

	d, err := decimal.NewFromString(number)
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidAmount, err)
	}
	units := d.Shift(int32(precision))
	if !units.IsInteger() || units.Abs().GreaterThan(decimal.NewFromInt(math.MaxInt64)) {
		return Amount{}, fmt.Errorf("%w: %q is out of range", apperrors.ErrInvalidAmount, number)
	}

	return NewAmount(units.IntPart(), NewSymbol(uint8(precision), code)), nil
}
