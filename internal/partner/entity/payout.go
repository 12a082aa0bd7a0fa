package entity

import "time"

// PayoutMethod is how a partner wants commissions paid out.
type PayoutMethod string

const (
	PayoutMethodBankTransfer PayoutMethod = "bank_transfer"
	PayoutMethodWallet       PayoutMethod = "wallet"
)

// PayoutMethodFromString normalizes a method string; unknown values fall
// back to bank transfer.
func PayoutMethodFromString(s string) PayoutMethod {
	if PayoutMethod(s) == PayoutMethodWallet {
		return PayoutMethodWallet
	}
	return PayoutMethodBankTransfer
}

// PayoutDetails is a partner's payout destination, keyed by partner ID.
type PayoutDetails struct {
	PartnerID     int64
	Method        PayoutMethod
	BankName      string
	AccountName   string
	AccountNumber string
	IBAN          string
	SwiftCode     string
	Currency      string
	UpdatedAt     time.Time
}
