package payee

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

const acceptKey = "accept"

// SetAccept switches whether the contract accepts GAS payments.
func SetAccept(accept bool) {
	storage.Put(storage.GetContext(), acceptKey, accept)
}

// OnNEP17Payment accepts GAS only if it was allowed with SetAccept.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	accept := storage.Get(storage.GetReadOnlyContext(), acceptKey)
	if accept == nil || !accept.(bool) {
		panic("payment rejected")
	}
}

// Withdraw calls one of FundMe withdrawal methods on behalf of this contract.
func Withdraw(fundme interop.Hash160, cheaper bool) {
	method := "withdraw"
	if cheaper {
		method = "cheaperWithdraw"
	}
	contract.Call(fundme, method, contract.All)
}
