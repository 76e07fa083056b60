package accounting

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nusantara-construction/ledger-backend/internal/core/domain"
)

// SignedBalance computes an account's balance from its debit/credit totals,
// signed by its normal balance side. Debit-normal accounts grow with debits,
// credit-normal accounts grow with credits.
func SignedBalance(normalBalance domain.NormalBalance, totalDebit, totalCredit decimal.Decimal) decimal.Decimal {
	if normalBalance == domain.CreditNormal {
		return totalCredit.Sub(totalDebit)
	}
	return totalDebit.Sub(totalCredit)
}

// SumLines totals the debit and credit sides of a set of entry lines.
func SumLines(lines []domain.JournalEntryLine) (decimal.Decimal, decimal.Decimal) {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, line := range lines {
		totalDebit = totalDebit.Add(line.DebitAmount)
		totalCredit = totalCredit.Add(line.CreditAmount)
	}
	return totalDebit, totalCredit
}

// ValidateLineAmounts checks that every line carries exactly one positive
// side. A line with both sides set, or neither, is rejected.
func ValidateLineAmounts(lines []domain.JournalEntryLine) error {
	zero := decimal.Zero
	for i, line := range lines {
		hasDebit := line.DebitAmount.GreaterThan(zero)
		hasCredit := line.CreditAmount.GreaterThan(zero)
		if line.DebitAmount.LessThan(zero) || line.CreditAmount.LessThan(zero) {
			return fmt.Errorf("line %d: amounts must not be negative", i+1)
		}
		if hasDebit == hasCredit {
			return fmt.Errorf("line %d: exactly one of debit or credit must be positive", i+1)
		}
	}
	return nil
}
