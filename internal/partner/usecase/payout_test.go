package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tradewire/ibdesk/internal/partner/entity"
	"github.com/tradewire/ibdesk/internal/pkg/goerror"
)

func TestPayoutSaveAndGet(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	err := env.uc.PayoutSave(ctx, PayoutSaveInput{
		PartnerID:     42,
		Method:        "bank_transfer",
		BankName:      "First National",
		AccountName:   "Alice Trader",
		AccountNumber: "00112233",
		IBAN:          "de89 3704 0044 0532 0130 00",
		SwiftCode:     "deutdeff",
		Currency:      "usd",
	})
	require.NoError(t, err)

	out, err := env.uc.PayoutGet(ctx, PayoutGetInput{PartnerID: 42})
	require.NoError(t, err)
	assert.Equal(t, entity.PayoutMethodBankTransfer, out.Method)
	assert.Equal(t, "USD", out.Currency)
	assert.Equal(t, "DE89370400440532013000", out.IBAN)
	assert.Equal(t, "DEUTDEFF", out.SwiftCode)
	assert.Equal(t, env.clock.at, out.UpdatedAt)
}

func TestPayoutSaveReplacesExisting(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	base := PayoutSaveInput{
		PartnerID:     42,
		Method:        "bank_transfer",
		BankName:      "First National",
		AccountName:   "Alice Trader",
		AccountNumber: "00112233",
		Currency:      "USD",
	}
	require.NoError(t, env.uc.PayoutSave(ctx, base))

	base.Method = "wallet"
	base.BankName = ""
	base.AccountNumber = "wallet-778899"
	require.NoError(t, env.uc.PayoutSave(ctx, base))

	out, err := env.uc.PayoutGet(ctx, PayoutGetInput{PartnerID: 42})
	require.NoError(t, err)
	assert.Equal(t, entity.PayoutMethodWallet, out.Method)
	assert.Equal(t, "wallet-778899", out.AccountNumber)
	assert.Empty(t, out.BankName)
}

func TestPayoutSaveBankTransferRequiresBankName(t *testing.T) {
	env := newTestEnv(t)

	err := env.uc.PayoutSave(t.Context(), PayoutSaveInput{
		PartnerID:     42,
		Method:        "bank_transfer",
		AccountName:   "Alice Trader",
		AccountNumber: "00112233",
		Currency:      "USD",
	})
	assertCode(t, err, goerror.CodeInvalidInput)
}

func TestPayoutGetMissing(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.uc.PayoutGet(t.Context(), PayoutGetInput{PartnerID: 7})
	assertCode(t, err, goerror.CodeNotFound)
}
