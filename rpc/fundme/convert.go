package fundme

import (
	"math/big"

	"github.com/nspcc-dev/fundme-contract/contracts/fundme/fundmeconst"
)

// Precision of the values handled by FundMe contract.
const (
	GASDecimals   = fundmeconst.GASDecimals
	PriceDecimals = fundmeconst.PriceDecimals
	USDDecimals   = fundmeconst.USDDecimals
)

// MinimumUSD returns minimal contribution accepted by FundMe contract in USD
// with USDDecimals precision.
func MinimumUSD() *big.Int {
	return new(big.Int).Mul(big.NewInt(fundmeconst.MinimumUSD), pow10(USDDecimals))
}

// ConversionRate returns USD value of the GAS amount at the given price the
// same way FundMe contract does. Both amount and price are expected in
// GASDecimals and PriceDecimals precision respectively.
func ConversionRate(amount, price *big.Int) *big.Int {
	res := new(big.Int).Mul(amount, price)
	return res.Mul(res, pow10(USDDecimals-GASDecimals-PriceDecimals))
}

// MinimumGAS returns the smallest GAS amount accepted by FundMe contract at
// the given price. Zero price means no amount is enough, nil is returned
// then.
func MinimumGAS(price *big.Int) *big.Int {
	if price.Sign() <= 0 {
		return nil
	}

	// amount >= min / (price * 10^k), rounded up
	div := new(big.Int).Mul(price, pow10(USDDecimals-GASDecimals-PriceDecimals))
	q, m := new(big.Int).QuoRem(MinimumUSD(), div, new(big.Int))
	if m.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}

	return q
}

func pow10(n int64) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(n), nil)
}
