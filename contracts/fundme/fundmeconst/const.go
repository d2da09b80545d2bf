// Package fundmeconst contains constants shared by FundMe contract and its
// off-chain clients.
package fundmeconst

const (
	// GASDecimals is a precision of native GAS amounts accepted by the
	// contract.
	GASDecimals = 8
	// PriceDecimals is a precision of the USD price of one GAS returned by the
	// price feed.
	PriceDecimals = 8
	// USDDecimals is a precision of USD values the contract operates with.
	USDDecimals = 18

	// MinimumUSD is a minimal contribution in whole US dollars. Contract
	// compares contributions with MinimumUSD * 10^USDDecimals.
	MinimumUSD = 50

	// PriceFeedMethod is a method of the price feed contract returning the
	// latest USD price of one GAS.
	PriceFeedMethod = "latestAnswer"
)

const (
	// ErrInsufficientFunding is thrown when USD value of a contribution is
	// less than the minimum.
	ErrInsufficientFunding = "you need to spend more GAS"
	// ErrTransferFailed is thrown when GAS contract refuses to transfer
	// collected funds to the owner.
	ErrTransferFailed = "failed to transfer funds to the owner"
	// ErrIndexOutOfRange is thrown on access to a non-existent funder.
	ErrIndexOutOfRange = "funder index out of range"
	// ErrFundFailed is thrown when GAS contract refuses to transfer
	// contribution from the funder.
	ErrFundFailed = "failed to transfer funds from the funder"
)

// Storage layout.
const (
	OwnerKey        = 'o'
	PriceFeedKey    = 'p'
	FundersCountKey = 'c'
	FunderPrefix    = 'f'
	LedgerPrefix    = 'a'
)
