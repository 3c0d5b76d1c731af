package expense

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Command is the keyword that carries an expense entry.
const Command = "/expense"

var (
	ErrWrongFieldCount = errors.New("expense entry needs exactly four pipe-separated fields")
	ErrInvalidAmount   = errors.New("amount must be a positive number")
)

// InvalidCategoryError reports a category that is not in the set, keeping
// the attempted value so replies can name it.
type InvalidCategoryError struct {
	Attempted string
}

func (e *InvalidCategoryError) Error() string {
	return fmt.Sprintf("unknown category %q", e.Attempted)
}

// Record is a fully validated expense entry. Only Parse constructs one:
// its category is a member of the set (normalized to lower case) and its
// amount is strictly positive.
type Record struct {
	Category    string
	Description string
	PaymentMode string
	Amount      decimal.Decimal
}

// Parse extracts a Record from the text of an /expense command.
// Expected shape: /expense <category> | <description> | <payment mode> | <amount>.
// Description and payment mode are preserved verbatim apart from trimming.
func Parse(text string, categories *CategorySet) (Record, error) {
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), Command))

	parts := strings.Split(rest, "|")
	if len(parts) != 4 {
		return Record{}, ErrWrongFieldCount
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	category, description, paymentMode, amountText := parts[0], parts[1], parts[2], parts[3]

	amount, err := decimal.NewFromString(amountText)
	if err != nil || !amount.IsPositive() {
		return Record{}, ErrInvalidAmount
	}

	if !categories.Contains(category) {
		return Record{}, &InvalidCategoryError{Attempted: category}
	}

	return Record{
		Category:    strings.ToLower(category),
		Description: description,
		PaymentMode: paymentMode,
		Amount:      amount,
	}, nil
}
