package account

import "fmt"

var (
	ErrAccountNotFound    = fmt.Errorf("account not found")
	ErrAccountNotPossible = fmt.Errorf("could not create account")
	ErrAccountClosed      = fmt.Errorf("account is closed")
	ErrAccountNotActive   = fmt.Errorf("account is not active")
	ErrNonZeroBalance     = fmt.Errorf("cannot close account with non-zero balance")
	ErrNotYours           = fmt.Errorf("you don't own this account, this will be reported")
	ErrInvalidAccountType = fmt.Errorf("account type is not recognised")
)

type AccountError struct {
	ErrorObj  error
	AccountID string
	Other     []error
}

func (a *AccountError) Error() string {
	return a.ErrorObj.Error()
}

func (a *AccountError) Unwrap() error {
	return a.ErrorObj
}

func (a *AccountError) ErrorOut() string {
	return fmt.Sprintf("%v: %v", a.ErrorObj.Error(), a.AccountID)
}

func NewAccountError(err error, accountID string, e ...error) *AccountError {
	return &AccountError{
		ErrorObj:  err,
		AccountID: accountID,
		Other:     e,
	}
}
