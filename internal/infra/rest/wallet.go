package rest

import (
	"context"

	"gigmarket/internal/domain/entity"
)

// Wallet returns the caller's escrow wallet balance.
func (c *Client) Wallet(ctx context.Context) (*entity.Wallet, error) {
	var out entity.Wallet
	if err := c.get(ctx, "/wallet", &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Transactions returns the caller's wallet ledger, newest first.
func (c *Client) Transactions(ctx context.Context) ([]*entity.Transaction, error) {
	var out []*entity.Transaction
	if err := c.get(ctx, "/wallet/transactions", &out); err != nil {
		return nil, err
	}

	return out, nil
}

type amountRequest struct {
	Amount float64 `json:"amount"`
}

// Deposit adds funds to the wallet.
func (c *Client) Deposit(ctx context.Context, amount float64) (*entity.Transaction, error) {
	var out entity.Transaction
	if err := c.post(ctx, "/wallet/deposit", amountRequest{Amount: amount}, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Withdraw moves available (non-escrowed) funds out of the wallet.
func (c *Client) Withdraw(ctx context.Context, amount float64) (*entity.Transaction, error) {
	var out entity.Transaction
	if err := c.post(ctx, "/wallet/withdraw", amountRequest{Amount: amount}, &out); err != nil {
		return nil, err
	}

	return &out, nil
}
