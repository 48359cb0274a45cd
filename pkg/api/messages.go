package api

import "time"

// Member is a trip participant.
type Member struct {
	ID          string `json:"id" validate:"required,max=128"`
	DisplayName string `json:"displayName,omitempty" validate:"max=100"`
}

// Split is the portion of one expense attributed to one member.
type Split struct {
	MemberID string  `json:"memberId" validate:"required"`
	Amount   float64 `json:"amount"`
}

// Expense is one payment made on behalf of the group.
// Splits may be omitted for EQUAL expenses; they are resolved over the roster.
type Expense struct {
	ID          string     `json:"id,omitempty"`
	TripID      string     `json:"tripId,omitempty"`
	Description string     `json:"description,omitempty" validate:"max=200"`
	Amount      float64    `json:"amount"`
	Category    string     `json:"category"`
	PayerID     string     `json:"payerId" validate:"required"`
	SplitType   string     `json:"splitType" validate:"required"`
	Splits      []Split    `json:"splits,omitempty" validate:"dive"`
	OccurredAt  *time.Time `json:"occurredAt,omitempty"`
	CreatedAt   int64      `json:"createdAt,omitempty"`
}

// Balance is a member's paid/owed/net position.
type Balance struct {
	MemberID string  `json:"memberId"`
	Paid     float64 `json:"paid"`
	Owed     float64 `json:"owed"`
	Balance  float64 `json:"balance"`
}

// Settlement is a recommended payment from a debtor to a creditor.
type Settlement struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// CategoryTotal is spend for one category with its share of the total.
type CategoryTotal struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Percent  float64 `json:"percent"`
}

// Summary is the computed ledger of a trip snapshot.
type Summary struct {
	Balances          []Balance          `json:"balances"`
	Settlements       []Settlement       `json:"settlements"`
	CategoryTotals    map[string]float64 `json:"categoryTotals"`
	CategoryBreakdown []CategoryTotal    `json:"categoryBreakdown"`
}

// Trip is a group of members sharing expenses.
type Trip struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Members   []Member `json:"members"`
	CreatedAt int64    `json:"createdAt"`
}

// LedgerService

type SettleRequest struct {
	TripID   string    `json:"tripId"`
	Expenses []Expense `json:"expenses" validate:"dive"`
	Members  []Member  `json:"members" validate:"required,min=1,dive"`
}

type SettleResponse struct {
	Summary
}

type GetTripSummaryRequest struct {
	TripID string `json:"tripId" validate:"required"`
}

type GetTripSummaryResponse struct {
	TripID string `json:"tripId"`
	Summary
}

// TripService

type CreateTripRequest struct {
	Name    string   `json:"name" validate:"required,max=100"`
	Members []Member `json:"members" validate:"required,min=1,dive"`
}

type CreateTripResponse struct {
	Trip *Trip `json:"trip"`
}

type GetTripRequest struct {
	TripID string `json:"tripId" validate:"required"`
}

type GetTripResponse struct {
	Trip *Trip `json:"trip"`
}

type ListTripsRequest struct{}

type ListTripsResponse struct {
	Trips []*Trip `json:"trips"`
}

type AddMembersRequest struct {
	TripID  string   `json:"tripId" validate:"required"`
	Members []Member `json:"members" validate:"required,min=1,dive"`
}

type AddMembersResponse struct {
	Trip *Trip `json:"trip"`
}

// ExpenseService

type CreateExpenseRequest struct {
	TripID  string  `json:"tripId" validate:"required"`
	Expense Expense `json:"expense"`
}

type CreateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type GetExpenseRequest struct {
	ExpenseID string `json:"expenseId" validate:"required"`
}

type GetExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type UpdateExpenseRequest struct {
	ExpenseID string  `json:"expenseId" validate:"required"`
	Expense   Expense `json:"expense"`
}

type UpdateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	ExpenseID string `json:"expenseId" validate:"required"`
}

type DeleteExpenseResponse struct{}

type ListExpensesByTripRequest struct {
	TripID string `json:"tripId" validate:"required"`
}

type ListExpensesByTripResponse struct {
	Expenses []*Expense `json:"expenses"`
}
