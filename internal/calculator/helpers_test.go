package calculator

import (
	"github.com/mmynk/tripledger/internal/models"
	"github.com/mmynk/tripledger/internal/money"
)

func roster(ids ...string) []models.Member {
	members := make([]models.Member, len(ids))
	for i, id := range ids {
		members[i] = models.Member{ID: id}
	}
	return members
}

func custom(id, payer string, amount money.Cents, splits map[string]money.Cents) models.Expense {
	e := models.Expense{
		ID:        id,
		TripID:    "trip-1",
		Amount:    amount,
		Category:  models.CategoryFood,
		PayerID:   payer,
		SplitType: models.SplitCustom,
	}
	for member, amt := range splits {
		e.Splits = append(e.Splits, models.ExpenseSplit{MemberID: member, Amount: amt})
	}
	return e
}

func equal(id, payer string, amount money.Cents) models.Expense {
	return models.Expense{
		ID:        id,
		TripID:    "trip-1",
		Amount:    amount,
		Category:  models.CategoryFood,
		PayerID:   payer,
		SplitType: models.SplitEqual,
	}
}

func splitTotal(e models.Expense) money.Cents {
	var total money.Cents
	for _, s := range e.Splits {
		total += s.Amount
	}
	return total
}
