package accounting

import (
	"fmt"

	"github.com/retailos/accounting_service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ComputeCurrentBalance applies the accounting-equation sign convention to a
// lifetime debit/credit sum. Assets and expenses grow on the debit side,
// liabilities, equity and income on the credit side. The same formula is used
// by the balance recompute path and by the report builders so the two can
// never drift.
func ComputeCurrentBalance(groupType domain.GroupType, opening, debits, credits decimal.Decimal) decimal.Decimal {
	if groupType.IsDebitNormal() {
		return opening.Add(debits.Sub(credits))
	}
	return opening.Add(credits.Sub(debits))
}

// ValidateEntryBalance checks the double-entry invariant for a set of journal
// items: amounts are non-negative and total debits equal total credits.
func ValidateEntryBalance(items []domain.JournalItem) (totalDebit, totalCredit decimal.Decimal, err error) {
	if len(items) == 0 {
		return decimal.Zero, decimal.Zero, fmt.Errorf("entry must have at least one item")
	}

	for _, item := range items {
		if item.Debit.IsNegative() || item.Credit.IsNegative() {
			return decimal.Zero, decimal.Zero, fmt.Errorf("item amounts must not be negative for account %s", item.AccountID)
		}
		totalDebit = totalDebit.Add(item.Debit)
		totalCredit = totalCredit.Add(item.Credit)
	}

	if !totalDebit.Equal(totalCredit) {
		return totalDebit, totalCredit, fmt.Errorf("entry does not balance: debits %s, credits %s", totalDebit.String(), totalCredit.String())
	}
	return totalDebit, totalCredit, nil
}
