// Package models defines the ledger data model for tripsplit.
//
// # Entities
//
//   - Trip: aggregate root holding people, expenses and settlements
//   - Person: a trip member, referenced by id from every other record
//   - Expense: a purchase with one or more payers (PaymentPart) and sharers (SplitMember)
//   - SettlementRecord: money that changed hands directly between two people
//
// Balances are not part of the model. They are derived on every read by the
// calculator package and never stored.
//
// # Design Principles
//
// 1. **Plain data**: models carry no behavior beyond lookups and validation
// 2. **Decimal money**: amounts are decimal.Decimal, encoded as JSON numbers so
// documents written by older clients load unchanged
// 3. **ID references**: records point at people by id string, never by pointer
// 4. **Append/delete only**: expenses and settlements are never edited in place
package models
