// Package entity contains the core business objects of the project.
package entity

import "time"

// TransactionType classifies a wallet ledger entry.
type TransactionType string

const (
	TransactionDeposit       TransactionType = "deposit"
	TransactionWithdrawal    TransactionType = "withdrawal"
	TransactionEscrowHold    TransactionType = "escrow_hold"
	TransactionEscrowRelease TransactionType = "escrow_release"
)

// Wallet is the read-only view of an account's escrow wallet.
type Wallet struct {
	Balance  float64 `json:"balance"`
	Escrowed float64 `json:"escrowed"` // Funds held against in-progress projects.
	Currency string  `json:"currency"`
}

// Transaction is a single wallet ledger entry.
type Transaction struct {
	ID        string          `json:"id"`
	Type      TransactionType `json:"type"`
	Amount    float64         `json:"amount"`
	Reference string          `json:"reference,omitempty"` // Related project or dispute id.
	Note      string          `json:"note,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}
