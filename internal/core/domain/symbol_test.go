package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/token_ledger/internal/apperrors"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in        string
		amount    int64
		precision uint8
		code      string
	}{
		{"100.0000 TOK", 1_000_000, 4, "TOK"},
		{"0.0000 TOK", 0, 4, "TOK"},
		{"-1.5 ABC", -15, 1, "ABC"},
		{"42 WHOLE", 42, 0, "WHOLE"},
		{"  7.25   EUR ", 725, 2, "EUR"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			a, err := ParseAmount(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.amount, a.Amount)
			assert.Equal(t, NewSymbol(tt.precision, tt.code), a.Symbol)
		})
	}
}

func TestParseAmount_Errors(t *testing.T) {
	for _, in := range []string{"", "100.0000", "TOK", "1.2.3 TOK", "ten TOK", "1e5 TOK", ".5 TOK", "1. TOK", "1 TOK extra", "9223372036854775808 BIG", "-9223372036854775808 BIG"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseAmount(in)
			assert.ErrorIs(t, err, apperrors.ErrValidation)
		})
	}
}

func TestParseAmount_DoesNotValidateSymbol(t *testing.T) {
	a, err := ParseAmount("1.0000 tok")
	require.NoError(t, err)
	assert.False(t, a.IsValid())
	assert.False(t, a.Symbol.IsValid())
}

func TestParseAmount_AboveMaxAmountParsesButIsInvalid(t *testing.T) {
	a, err := ParseAmount("4611686018427387904 TOK")
	require.NoError(t, err)
	assert.Equal(t, MaxAmount+1, a.Amount)
	assert.True(t, a.Symbol.IsValid())
	assert.False(t, a.IsAmountWithinRange())
	assert.False(t, a.IsValid())

	a, err = ParseAmount("9223372036854775807 TOK")
	require.NoError(t, err)
	assert.False(t, a.IsValid())
}

func TestAmount_String(t *testing.T) {
	assert.Equal(t, "100.0000 TOK", NewAmount(1_000_000, NewSymbol(4, "TOK")).String())
	assert.Equal(t, "0.0001 TOK", NewAmount(1, NewSymbol(4, "TOK")).String())
	assert.Equal(t, "-2.50 EUR", NewAmount(-250, NewSymbol(2, "EUR")).String())
	assert.Equal(t, "3 WHOLE", NewAmount(3, NewSymbol(0, "WHOLE")).String())

	for _, s := range []string{"100.0000 TOK", "0.001 ABC", "-9.99 EUR"} {
		a, err := ParseAmount(s)
		require.NoError(t, err)
		assert.Equal(t, s, a.String())
	}
}

func TestSymbol_IsValid(t *testing.T) {
	tests := []struct {
		symbol Symbol
		valid  bool
	}{
		{NewSymbol(4, "TOK"), true},
		{NewSymbol(0, "A"), true},
		{NewSymbol(18, "ABCDEFG"), true},
		{NewSymbol(4, ""), false},
		{NewSymbol(4, "ABCDEFGH"), false},
		{NewSymbol(4, "tok"), false},
		{NewSymbol(4, "T0K"), false},
		{NewSymbol(19, "TOK"), false},
	}
	for _, tt := range tests {
		t.Run(tt.symbol.String(), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.symbol.IsValid())
		})
	}
}

func TestParseSymbol(t *testing.T) {
	s, err := ParseSymbol("4,TOK")
	require.NoError(t, err)
	assert.Equal(t, NewSymbol(4, "TOK"), s)
	assert.Equal(t, "4,TOK", s.String())

	_, err = ParseSymbol("TOK")
	assert.ErrorIs(t, err, apperrors.ErrInvalidSymbol)
	_, err = ParseSymbol("x,TOK")
	assert.ErrorIs(t, err, apperrors.ErrInvalidSymbol)
}

func TestAmount_Range(t *testing.T) {
	tok := NewSymbol(4, "TOK")
	assert.True(t, NewAmount(MaxAmount, tok).IsValid())
	assert.True(t, NewAmount(-MaxAmount, tok).IsValid())
	assert.False(t, NewAmount(MaxAmount+1, tok).IsValid())
	assert.False(t, NewAmount(-MaxAmount-1, tok).IsValid())
}

func TestAmount_AddSub(t *testing.T) {
	tok := NewSymbol(4, "TOK")

	sum, err := NewAmount(10, tok).Add(NewAmount(5, tok))
	require.NoError(t, err)
	assert.Equal(t, int64(15), sum.Amount)

	diff, err := NewAmount(10, tok).Sub(NewAmount(15, tok))
	require.NoError(t, err)
	assert.Equal(t, int64(-5), diff.Amount)

	_, err = NewAmount(10, tok).Add(NewAmount(5, NewSymbol(2, "TOK")))
	assert.ErrorIs(t, err, apperrors.ErrSymbolMismatch)

	_, err = NewAmount(MaxAmount, tok).Add(NewAmount(1, tok))
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)

	_, err = NewAmount(-MaxAmount, tok).Sub(NewAmount(1, tok))
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
}

func TestTokenStat_Headroom(t *testing.T) {
	tok := NewSymbol(4, "TOK")
	stat := TokenStat{Supply: NewAmount(9_999_999, tok), MaxSupply: NewAmount(10_000_000, tok)}
	assert.Equal(t, int64(1), stat.Headroom())
	assert.Equal(t, tok, stat.Symbol())
}

func TestIsValidAccountName(t *testing.T) {
	for _, name := range []string{"a", "alice", "bob.tok", "abcdefghijkl", "user12345"} {
		assert.True(t, IsValidAccountName(name), name)
	}
	for _, name := range []string{"", "Alice", "abcdefghijklm", "user6", "ends.", "with space", "dash-name"} {
		assert.False(t, IsValidAccountName(name), name)
	}
}

func TestAction_AddRecipient(t *testing.T) {
	a := Action{}
	a.AddRecipient("alice")
	a.AddRecipient("bob")
	a.AddRecipient("alice")
	assert.Equal(t, []string{"alice", "bob"}, a.Recipients)

	assert.True(t, ActionIssue.FundsNewRecords())
	assert.True(t, ActionTransfer.FundsNewRecords())
	assert.False(t, ActionIssueFree.FundsNewRecords())
	assert.False(t, ActionTransferFree.FundsNewRecords())
}
