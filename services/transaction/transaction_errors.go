package transaction

import "fmt"

var (
	ErrInvalidEntryType  = fmt.Errorf("ledger entry type is not recognised")
	ErrNonPositiveAmount = fmt.Errorf("ledger entry amount must be positive")
)
