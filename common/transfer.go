package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/util"
)

// AbortWithMessage calls `runtime.Log` with passed message
// and calls `ABORT` opcode.
func AbortWithMessage(msg string) {
	runtime.Log(msg)
	util.Abort()
}

// TransferGAS transfers amount of native GAS and panics with msg if
// GAS contract refuses the transfer.
func TransferGAS(from, to interop.Hash160, amount int, data any, msg string) {
	if !gas.Transfer(from, to, amount, data) {
		panic(msg)
	}
}

// CheckGASCaller aborts execution if the method was not called by the
// native GAS contract. It is used in NEP-17 payment callbacks.
func CheckGASCaller() {
	caller := runtime.GetCallingScriptHash()
	if !caller.Equals(gas.Hash) {
		AbortWithMessage("only GAS can be accepted")
	}
}
