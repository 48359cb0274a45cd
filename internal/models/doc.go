// Package models defines the core domain models for tripledger.
//
// # Stored Models
//
// These are created and edited through the trip and expense services and
// persisted by the storage layer:
//   - Trip: a group of members sharing expenses
//   - Member: a trip participant (roster owned by the membership collaborator)
//   - Expense: who paid how much, and how it is split
//   - ExpenseSplit: the portion of one expense attributed to one member
//
// # Derived Models
//
// These are recomputed on every read from the current expense set and are
// never persisted:
//   - MemberBalance: a member's paid/owed/net position
//   - SettlementTransaction: a recommended payment between two members
//   - CategoryTotal: spend rolled up by category
//
// # Design Principles
//
// 1. **Fixed-point money**: every amount is money.Cents; decimals only exist at the wire boundary
// 2. **Resolved splits**: EQUAL splits are resolved once at creation and stored, never re-derived
// 3. **Avoid circular references**: use ID strings instead of pointers for relationships
package models
