// Package models defines the core domain models for SplitPal.
//
// A Group owns Members, Expenses and Settlements. An Expense carries one
// ExpenseShare per participant; shares are created atomically with their
// parent expense and cannot outlive it. A Settlement records a direct
// payer-to-receiver transfer that offsets owed balances.
//
// Members are identified by UUID strings scoped to their group. Amounts are
// currency-agnostic decimals (float64, two decimals of display precision);
// the ledger package treats residuals below 0.01 as settled.
package models
