// Package chaintest provides helpers to run FundMe contracts on a private
// in-memory blockchain in tests.
package chaintest

import (
	"math/big"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/stretchr/testify/require"
)

const (
	// PriceDecimals is a precision of the mock price feed.
	PriceDecimals = 8
	// DefaultPrice is 2000 USD per GAS in PriceDecimals precision.
	DefaultPrice = 2000_0000_0000

	// GAS is 1.0 GAS in datoshi.
	GAS = 1_0000_0000
)

// Paths of contract sources relative to the repository root.
const (
	FundMePath    = "contracts/fundme"
	PriceFeedPath = "internal/testcontracts/pricefeed"
	PayeePath     = "internal/testcontracts/payee"
)

var rootDir = func() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..")
}()

// Compile compiles contract located at the given path relative to the
// repository root. Resulting hash corresponds to the committee deployment.
func Compile(t testing.TB, e *neotest.Executor, path string) *neotest.Contract {
	dir := filepath.Join(rootDir, path)
	return neotest.CompileFile(t, e.CommitteeHash, dir, filepath.Join(dir, "config.yml"))
}

// NewExecutor creates new blockchain with a single validator and returns
// executor using it as a committee.
func NewExecutor(t testing.TB) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}

// DeployPriceFeed deploys mock price feed returning answer with
// PriceDecimals precision.
func DeployPriceFeed(t testing.TB, e *neotest.Executor, answer int64) util.Uint160 {
	c := Compile(t, e, PriceFeedPath)
	e.DeployContract(t, c, []any{int64(PriceDecimals), answer})
	return c.Hash
}

// DeployFundMe deploys FundMe contract and returns committee invoker of it.
func DeployFundMe(t testing.TB, e *neotest.Executor, owner, priceFeed util.Uint160) *neotest.ContractInvoker {
	c := Compile(t, e, FundMePath)
	e.DeployContract(t, c, []any{owner, priceFeed})
	return e.CommitteeInvoker(c.Hash)
}

// DeployPayee deploys contract which can own FundMe and refuse payments.
func DeployPayee(t testing.TB, e *neotest.Executor) *neotest.ContractInvoker {
	c := Compile(t, e, PayeePath)
	e.DeployContract(t, c, nil)
	return e.CommitteeInvoker(c.Hash)
}

// GASBalance returns GAS balance of the account.
func GASBalance(t testing.TB, e *neotest.Executor, acc util.Uint160) *big.Int {
	gasInvoker := e.CommitteeInvoker(e.NativeHash(t, nativenames.Gas))

	res, err := gasInvoker.TestInvoke(t, "balanceOf", acc)
	require.NoError(t, err)

	return res.Top().BigInt()
}

// TransferGAS transfers amount of GAS from the signer to the account and
// returns transaction hash. Transaction is expected to HALT.
func TransferGAS(t testing.TB, e *neotest.Executor, from neotest.Signer, to util.Uint160, amount int64) util.Uint256 {
	gasInvoker := e.NewInvoker(e.NativeHash(t, nativenames.Gas), from)
	return gasInvoker.Invoke(t, true, "transfer", from.ScriptHash(), to, amount, nil)
}
