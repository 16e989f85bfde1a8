package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wallet is a per-user balance. Balance caches Σcredit − Σdebit over the
// user's transactions and is re-asserted on every post.
type Wallet struct {
	UserID    uuid.UUID
	Balance   decimal.Decimal
	Currency  Currency
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WalletTransaction is an immutable ledger row.
type WalletTransaction struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	Type                TransactionType
	Amount              decimal.Decimal
	Currency            Currency
	Balance             decimal.Decimal
	CreditRequestID     *uuid.UUID
	RedemptionRequestID *uuid.UUID
	// SourceTransactionID is the credit consumed by a debit, or the debit a
	// reversal credit compensates.
	SourceTransactionID *uuid.UUID
	Redeemed            bool
	Description         string
	TimelineLog         TimelineLog
	CreatedAt           time.Time
}

// IsRedeemable reports whether the transaction can back a new redemption.
func (t *WalletTransaction) IsRedeemable() bool {
	return t.Type == TransactionTypeCredit && !t.Redeemed
}

// TransactionLinks are the optional back-references of a posted transaction.
type TransactionLinks struct {
	CreditRequestID     *uuid.UUID
	RedemptionRequestID *uuid.UUID
	SourceTransactionID *uuid.UUID
}

// BalanceCheck compares the cached balance with the ledger sum.
type BalanceCheck struct {
	UserID   uuid.UUID
	Cached   decimal.Decimal
	Computed decimal.Decimal
	Credits  decimal.Decimal
	Debits   decimal.Decimal
}

// Consistent reports whether the cached balance matches the ledger.
func (c BalanceCheck) Consistent() bool {
	return c.Cached.Equal(c.Computed)
}

// PostTransactionParams describes a ledger row to append. NewBalance is
// computed by the caller while holding the wallet lock.
type PostTransactionParams struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Type        TransactionType
	Amount      decimal.Decimal
	Currency    Currency
	NewBalance  decimal.Decimal
	Links       TransactionLinks
	Description string
	TimelineLog TimelineLog
}

// LedgerPosting is what a workflow asks the ledger to post against a wallet it
// has locked. The ledger derives the new balance itself.
type LedgerPosting struct {
	Type        TransactionType
	Amount      decimal.Decimal
	Currency    Currency
	Links       TransactionLinks
	Description string
	TimelineLog TimelineLog
}
