package main

import (
	"bytes"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/nspcc-dev/fundme-contract/contracts/fundme/fundmeconst"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/encoding/bigint"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/stretchr/testify/require"
)

func TestParseGAS(t *testing.T) {
	amount, err := parseGAS("0.03")
	require.NoError(t, err)
	require.EqualValues(t, 300_0000, amount.Int64())

	amount, err = parseGAS("12")
	require.NoError(t, err)
	require.EqualValues(t, 12_0000_0000, amount.Int64())

	for _, s := range []string{"", "0", "-1", "abc", "0.000000001"} {
		_, err := parseGAS(s)
		require.Error(t, err, s)
	}
}

func TestDescribeStorageItem(t *testing.T) {
	var (
		owner  = util.Uint160{1, 2, 3}
		feed   = util.Uint160{4, 5, 6}
		funder = util.Uint160{7, 8, 9}
	)

	for _, tc := range []struct {
		key, value []byte
		expected   string
	}{
		{[]byte{fundmeconst.OwnerKey}, owner.BytesBE(), "owner: " + address.Uint160ToString(owner)},
		{[]byte{fundmeconst.PriceFeedKey}, feed.BytesBE(), "price feed: " + feed.StringLE()},
		{[]byte{fundmeconst.FundersCountKey}, bigint.ToBytes(big.NewInt(3)), "funders count: 3"},
		{append([]byte{fundmeconst.FunderPrefix}, bigint.ToBytes(big.NewInt(2))...), funder.BytesBE(),
			"funder #2: " + address.Uint160ToString(funder)},
		{[]byte{fundmeconst.FunderPrefix}, funder.BytesBE(), "funder #0: " + address.Uint160ToString(funder)},
		{append([]byte{fundmeconst.LedgerPrefix}, funder.BytesBE()...), bigint.ToBytes(big.NewInt(300_0000)),
			"funded by " + address.Uint160ToString(funder) + ": 0.03 GAS"},
	} {
		desc, err := describeStorageItem(tc.key, tc.value)
		require.NoError(t, err)
		require.Equal(t, tc.expected, desc)
	}

	for _, tc := range []struct{ key, value []byte }{
		{nil, nil},
		{[]byte{'x'}, nil},
		{[]byte{fundmeconst.OwnerKey}, []byte{1}},
		{[]byte{fundmeconst.OwnerKey, 1}, owner.BytesBE()},
		{[]byte{fundmeconst.LedgerPrefix, 1}, nil},
	} {
		_, err := describeStorageItem(tc.key, tc.value)
		require.Error(t, err)
	}

	var buf bytes.Buffer
	require.NoError(t, printStorageItem(&buf, []byte{'x'}, []byte{0xff}))
	require.True(t, strings.HasPrefix(buf.String(), "78: ff"))
}

type methodInvoker map[string]stackitem.Item

func (x methodInvoker) Call(_ util.Uint160, operation string, params ...any) (*result.Invoke, error) {
	if operation == "getFunders" {
		operation += params[0].(*big.Int).String()
	}

	item, ok := x[operation]
	if !ok {
		return nil, errors.New("unexpected call " + operation)
	}

	return &result.Invoke{State: vmstate.Halt.String(), Stack: []stackitem.Item{item}}, nil
}

func TestReadStatus(t *testing.T) {
	var (
		contract = util.Uint160{0xfe}
		owner    = util.Uint160{1}
		feed     = util.Uint160{2}
		a, b     = util.Uint160{3}, util.Uint160{4}
	)

	inv := methodInvoker{
		"version":                  stackitem.Make(1000),
		"getOwner":                 stackitem.NewByteArray(owner.BytesBE()),
		"getPriceFeed":             stackitem.NewByteArray(feed.BytesBE()),
		"latestAnswer":             stackitem.Make(2000_0000_0000),
		"getMinimumUSD":            stackitem.Make(fundmeconst.MinimumUSD),
		"balanceOf":                stackitem.Make(3_0000_0000),
		"getFundersCount":          stackitem.Make(3),
		"getFunders0":              stackitem.NewByteArray(a.BytesBE()),
		"getFunders1":              stackitem.NewByteArray(b.BytesBE()),
		"getFunders2":              stackitem.NewByteArray(a.BytesBE()),
		"getAddressToAmountFunded": stackitem.Make(1_5000_0000),
	}

	st, err := readStatus(inv, contract)
	require.NoError(t, err)
	require.Equal(t, owner, st.owner)
	require.Equal(t, feed, st.priceFeed)
	require.EqualValues(t, 3_0000_0000, st.balance.Int64())
	require.Equal(t, []util.Uint160{a, b, a}, st.funders)
	require.Len(t, st.ledger, 2)
	require.Equal(t, a, st.ledger[0].funder)
	require.Equal(t, b, st.ledger[1].funder)

	var buf bytes.Buffer
	st.print(&buf)
	require.Contains(t, buf.String(), "Balance:    3 GAS")
	require.Contains(t, buf.String(), "Price:      2000 USD/GAS")
	require.Contains(t, buf.String(), "Contributions: 3")
	require.Contains(t, buf.String(), address.Uint160ToString(b)+": 1.5 GAS")

	t.Run("failure", func(t *testing.T) {
		delete(inv, "getFunders1")

		_, err := readStatus(inv, contract)
		require.ErrorContains(t, err, "get funder #1")
	})
}
