package ledger_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rbarros/pixwallet/internal/ledger"
)

func TestEntry_Validate(t *testing.T) {
	type testCase struct {
		name    string
		entry   ledger.Entry
		wantErr error
	}

	tests := []testCase{
		{
			name:  "ValidCredit",
			entry: ledger.Entry{Kind: ledger.KindCredit, Amount: decimal.NewFromInt(10)},
		},
		{
			name:  "ZeroAmountIsValid",
			entry: ledger.Entry{Kind: ledger.KindDebit, Amount: decimal.Zero},
		},
		{
			name:    "NegativeAmount",
			entry:   ledger.Entry{Kind: ledger.KindDebit, Amount: decimal.NewFromInt(-1)},
			wantErr: ledger.ErrInvalidAmount,
		},
		{
			name:    "UnknownKind",
			entry:   ledger.Entry{Kind: "transfer", Amount: decimal.NewFromInt(1)},
			wantErr: ledger.ErrInvalidKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestEntry_Signed(t *testing.T) {
	credit := ledger.Entry{Kind: ledger.KindCredit, Amount: decimal.NewFromInt(40)}
	debit := ledger.Entry{Kind: ledger.KindDebit, Amount: decimal.NewFromInt(40)}

	assert.True(t, credit.Signed().Equal(decimal.NewFromInt(40)))
	assert.True(t, debit.Signed().Equal(decimal.NewFromInt(-40)))
}
