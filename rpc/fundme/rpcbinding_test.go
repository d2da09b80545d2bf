package fundme

import (
	"errors"
	"math/big"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/trigger"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/stretchr/testify/require"
)

type testInvoker struct {
	contract util.Uint160
	method   string
	params   []any

	res *result.Invoke
	err error
}

func (x *testInvoker) Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error) {
	x.contract, x.method, x.params = contract, operation, params
	return x.res, x.err
}

func halt(items ...stackitem.Item) *result.Invoke {
	return &result.Invoke{State: vmstate.Halt.String(), Stack: items}
}

func TestContractReader(t *testing.T) {
	var (
		hash  = util.Uint160{1, 2, 3}
		owner = util.Uint160{4, 5, 6}
		inv   = new(testInvoker)
		r     = NewReader(inv, hash)
	)

	t.Run("owner", func(t *testing.T) {
		inv.res = halt(stackitem.NewByteArray(owner.BytesBE()))

		res, err := r.GetOwner()
		require.NoError(t, err)
		require.Equal(t, owner, res)
		require.Equal(t, hash, inv.contract)
		require.Equal(t, "getOwner", inv.method)
	})

	t.Run("amount funded", func(t *testing.T) {
		inv.res = halt(stackitem.Make(42))

		res, err := r.GetAddressToAmountFunded(owner)
		require.NoError(t, err)
		require.EqualValues(t, 42, res.Int64())
		require.Equal(t, "getAddressToAmountFunded", inv.method)
		require.Equal(t, []any{owner}, inv.params)
	})

	t.Run("funder", func(t *testing.T) {
		inv.res = halt(stackitem.NewBuffer(owner.BytesBE()))

		res, err := r.GetFunders(big.NewInt(3))
		require.NoError(t, err)
		require.Equal(t, owner, res)
		require.Equal(t, []any{big.NewInt(3)}, inv.params)
	})

	t.Run("fault", func(t *testing.T) {
		inv.res = &result.Invoke{State: vmstate.Fault.String(), FaultException: "funder index out of range"}

		_, err := r.GetFunders(big.NewInt(0))
		require.ErrorContains(t, err, "funder index out of range")
	})

	t.Run("invoker error", func(t *testing.T) {
		inv.res, inv.err = nil, errors.New("connection refused")

		_, err := r.GetFundersCount()
		require.Error(t, err)
	})
}

func TestEventsFromApplicationLog(t *testing.T) {
	var (
		hash   = util.Uint160{1, 2, 3}
		funder = util.Uint160{7, 8, 9}
	)

	log := &result.ApplicationLog{
		Executions: []state.Execution{{
			Trigger: trigger.Application,
			VMState: vmstate.Halt,
			Events: []state.NotificationEvent{
				{
					ScriptHash: hash,
					Name:       "Funded",
					Item: stackitem.NewArray([]stackitem.Item{
						stackitem.NewByteArray(funder.BytesBE()),
						stackitem.Make(100),
					}),
				},
				{
					ScriptHash: hash,
					Name:       "Withdrawn",
					Item: stackitem.NewArray([]stackitem.Item{
						stackitem.NewBuffer(funder.BytesBE()),
						stackitem.Make(100),
					}),
				},
			},
		}},
	}

	funded, err := FundedEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Equal(t, []*FundedEvent{{Funder: funder, Amount: big.NewInt(100)}}, funded)

	withdrawn, err := WithdrawnEventsFromApplicationLog(log)
	require.NoError(t, err)
	require.Equal(t, []*WithdrawnEvent{{Owner: funder, Amount: big.NewInt(100)}}, withdrawn)

	t.Run("nil log", func(t *testing.T) {
		_, err := FundedEventsFromApplicationLog(nil)
		require.Error(t, err)
	})

	t.Run("malformed", func(t *testing.T) {
		log.Executions[0].Events[0].Item = stackitem.NewArray([]stackitem.Item{
			stackitem.NewByteArray([]byte{1, 2, 3}),
			stackitem.Make(100),
		})

		_, err := FundedEventsFromApplicationLog(log)
		require.ErrorContains(t, err, "field Funder")

		log.Executions[0].Events[0].Item = stackitem.NewArray(nil)

		_, err = FundedEventsFromApplicationLog(log)
		require.Error(t, err)
	})
}
