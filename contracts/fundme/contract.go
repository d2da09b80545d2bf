package fundme

import (
	"github.com/nspcc-dev/fundme-contract/common"
	"github.com/nspcc-dev/fundme-contract/contracts/fundme/fundmeconst"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/math"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// _deploy stores the owner and the price feed of the contract.
// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	if isUpdate {
		panic("contract can't be updated")
	}

	args := data.(struct {
		owner     interop.Hash160
		priceFeed interop.Hash160
	})

	if len(args.owner) != interop.Hash160Len {
		panic("incorrect length of owner script hash")
	}

	if len(args.priceFeed) != interop.Hash160Len {
		panic("incorrect length of price feed script hash")
	}

	if management.GetContract(args.priceFeed) == nil {
		panic("price feed contract is not deployed")
	}

	ctx := storage.GetContext()
	storage.Put(ctx, []byte{fundmeconst.OwnerKey}, args.owner)
	storage.Put(ctx, []byte{fundmeconst.PriceFeedKey}, args.priceFeed)

	runtime.Log("fundme: contract initialized")
}

// Fund transfers amount of GAS from the funder account to the contract. It
// can be invoked only by the funder.
//
// Bookkeeping is done in OnNEP17Payment triggered by the transfer, so the
// contribution must be worth at least MinimumUSD according to the price feed.
// Otherwise the whole transaction fails including the transfer itself.
func Fund(funder interop.Hash160, amount int) {
	common.CheckWitness(funder)

	common.TransferGAS(funder, runtime.GetExecutingScriptHash(), amount, nil,
		fundmeconst.ErrFundFailed)
}

// OnNEP17Payment is a callback for NEP-17 compatible native GAS contract.
// Any GAS transferred to the contract is accounted as a contribution of the
// sender, the same way as with Fund method.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	common.CheckGASCaller()

	if from == nil {
		panic("minted GAS can't be accepted")
	}

	fund(storage.GetContext(), from, amount)
}

// Withdraw transfers all collected GAS to the owner and resets contributions
// of all funders. It can be invoked only by the owner.
//
// Funders are read from storage one by one on every iteration. See
// CheaperWithdraw for the variant reading them once.
func Withdraw() {
	ctx := storage.GetContext()
	owner := checkOwner(ctx)

	for i := 0; i < common.GetInt(ctx, []byte{fundmeconst.FundersCountKey}); i++ {
		funder := storage.Get(ctx, funderKey(i)).(interop.Hash160)
		storage.Delete(ctx, ledgerKey(funder))
	}

	n := common.GetInt(ctx, []byte{fundmeconst.FundersCountKey})
	for i := 0; i < n; i++ {
		storage.Delete(ctx, funderKey(i))
	}
	storage.Delete(ctx, []byte{fundmeconst.FundersCountKey})

	payOut(owner)
}

// CheaperWithdraw does the same as Withdraw, but reads all funders with a
// single storage iterator before resetting their contributions.
func CheaperWithdraw() {
	ctx := storage.GetContext()
	owner := checkOwner(ctx)

	keys := [][]byte{}
	funders := []interop.Hash160{}

	it := storage.Find(ctx, []byte{fundmeconst.FunderPrefix}, storage.None)
	for iterator.Next(it) {
		kv := iterator.Value(it).(struct {
			key   []byte
			value []byte
		})
		keys = append(keys, kv.key)
		funders = append(funders, kv.value)
	}

	for i := range funders {
		storage.Delete(ctx, ledgerKey(funders[i]))
	}

	for i := range keys {
		storage.Delete(ctx, keys[i])
	}
	storage.Delete(ctx, []byte{fundmeconst.FundersCountKey})

	payOut(owner)
}

// GetPriceFeed returns script hash of the price feed contract.
func GetPriceFeed() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, []byte{fundmeconst.PriceFeedKey}).(interop.Hash160)
}

// GetOwner returns script hash of the contract owner.
func GetOwner() interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	return storage.Get(ctx, []byte{fundmeconst.OwnerKey}).(interop.Hash160)
}

// GetAddressToAmountFunded returns amount of GAS contributed by the funder
// since the last withdrawal.
func GetAddressToAmountFunded(funder interop.Hash160) int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, ledgerKey(funder))
}

// GetFunders returns funder by its index in the list of contributions made
// since the last withdrawal. The same funder is listed once per contribution.
func GetFunders(index int) interop.Hash160 {
	ctx := storage.GetReadOnlyContext()

	if index < 0 || index >= common.GetInt(ctx, []byte{fundmeconst.FundersCountKey}) {
		panic(fundmeconst.ErrIndexOutOfRange)
	}

	return storage.Get(ctx, funderKey(index)).(interop.Hash160)
}

// GetFundersCount returns number of contributions made since the last
// withdrawal.
func GetFundersCount() int {
	ctx := storage.GetReadOnlyContext()
	return common.GetInt(ctx, []byte{fundmeconst.FundersCountKey})
}

// GetMinimumUSD returns minimal contribution in USD with USDDecimals
// precision.
func GetMinimumUSD() int {
	return minimumUSD()
}

// GetConversionRate returns USD value of the GAS amount according to the
// latest price from the price feed. The result has USDDecimals precision.
func GetConversionRate(amount int) int {
	return conversionRate(amount)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func fund(ctx storage.Context, funder interop.Hash160, amount int) {
	if conversionRate(amount) < minimumUSD() {
		panic(fundmeconst.ErrInsufficientFunding)
	}

	key := ledgerKey(funder)
	common.PutInt(ctx, key, common.GetInt(ctx, key)+amount)

	n := common.GetInt(ctx, []byte{fundmeconst.FundersCountKey})
	storage.Put(ctx, funderKey(n), funder)
	storage.Put(ctx, []byte{fundmeconst.FundersCountKey}, n+1)

	runtime.Notify("Funded", funder, amount)
}

func checkOwner(ctx storage.Context) interop.Hash160 {
	owner := storage.Get(ctx, []byte{fundmeconst.OwnerKey}).(interop.Hash160)
	common.CheckOwnerWitness(owner)

	return owner
}

func payOut(owner interop.Hash160) {
	self := runtime.GetExecutingScriptHash()
	balance := gas.BalanceOf(self)

	common.TransferGAS(self, owner, balance, nil, fundmeconst.ErrTransferFailed)

	runtime.Notify("Withdrawn", owner, balance)
}

func conversionRate(amount int) int {
	feed := storage.Get(storage.GetReadOnlyContext(), []byte{fundmeconst.PriceFeedKey}).(interop.Hash160)
	price := contract.Call(feed, fundmeconst.PriceFeedMethod, contract.ReadOnly).(int)

	return amount * price * math.Pow(10, fundmeconst.USDDecimals-fundmeconst.GASDecimals-fundmeconst.PriceDecimals)
}

// minimumUSD is computed at runtime: 50 * 10^18 does not fit a Go int
// constant while NeoVM integers are 256-bit.
func minimumUSD() int {
	return fundmeconst.MinimumUSD * math.Pow(10, fundmeconst.USDDecimals)
}

func ledgerKey(funder interop.Hash160) []byte {
	return append([]byte{fundmeconst.LedgerPrefix}, funder...)
}

func funderKey(index int) []byte {
	var buf any = index
	return append([]byte{fundmeconst.FunderPrefix}, buf.([]byte)...)
}
