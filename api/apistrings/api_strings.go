package apistrings

const (
	/// Basic User Related Strings
	UserNotFound = "user or account does not exist"

	/// Core Functionality Error
	ServerError = "a server error occurred, please try again later"

	/// Account Related Strings
	InvalidAccountInput  = "check 'currency' or 'type' keys, invalid request"
	InvalidAccountID     = "entered account ID is invalid"
	AccountNotFound      = "account does not exist"
	AccountNotYours      = "account does not belong to this user"
	CurrencyNotSupported = "entered currency is not supported"

	/// Transfer Related Strings
	InvalidTransferInput = "check 'from_account_id', 'amount' or 'transfer_type' keys, invalid request"
	InvalidTransferID    = "entered transfer ID is invalid"
	TransferNotFound     = "transfer does not exist"

	/// Wallet Related Strings
	UserNoWallet       = "user does not have a custodial wallet"
	InvalidSendInput   = "check 'to_address' or 'amount' keys, invalid request"
	InvalidDepositData = "check 'from_address', 'amount' or 'tx_hash' keys, invalid request"

	/// Rate Related Strings
	InvalidRateInput = "check 'base_currency', 'quote_currency' or 'rate' keys, invalid request"
	RateNotFound     = "no exchange rate recorded for currency pair"
)
