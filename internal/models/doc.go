// Package models defines the core domain models for Splitty.
//
// # Source of truth
//
// An Event owns its Participants and its Expenses; the expense ledger is the
// only persisted state. Everything else is derived:
//   - Balance: net position per participant, recomputed from the ledger
//   - Debt: pairwise transfer that settles balances, recomputed per query
//
// # Settlement
//
// Settling a debt is recorded by appending an Expense with the reserved
// CategorySettlement tag (payer = debtor, sole beneficiary = creditor). The
// derived Debt values themselves are never stored or mutated, which is what
// keeps the recomputed debt view and the settlement history consistent.
//
// # Design principles
//
//  1. Derived values are plain value types with no lifecycle of their own
//  2. Relationships use ID strings instead of pointers, avoiding cycles
//  3. Original expense amount and currency are immutable once recorded
package models
