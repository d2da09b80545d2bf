package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/nspcc-dev/fundme-contract/contracts/fundme/fundmeconst"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/encoding/bigint"
	"github.com/nspcc-dev/neo-go/pkg/encoding/fixedn"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/urfave/cli"
)

func storageAction(c *cli.Context) error {
	b, err := newRemoteBlockchain(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer b.close()

	h, err := b.network.FundMeHash()
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	err = b.iterateContractStorage(h, func(key, value []byte) error {
		return printStorageItem(c.App.Writer, key, value)
	})
	if err != nil {
		return cli.NewExitError(fmt.Errorf("iterate FundMe storage: %w", err), 1)
	}

	return nil
}

// printStorageItem writes FundMe storage item decoded according to the key
// prefix. Unknown items are written as is.
func printStorageItem(w io.Writer, key, value []byte) error {
	desc, err := describeStorageItem(key, value)
	if err != nil {
		fmt.Fprintf(w, "%x: %x (%v)\n", key, value, err)
		return nil
	}

	fmt.Fprintln(w, desc)

	return nil
}

func describeStorageItem(key, value []byte) (string, error) {
	if len(key) == 0 {
		return "", errors.New("empty key")
	}

	switch key[0] {
	case fundmeconst.OwnerKey, fundmeconst.PriceFeedKey:
		if len(key) != 1 {
			break
		}

		h, err := util.Uint160DecodeBytesBE(value)
		if err != nil {
			return "", err
		}

		if key[0] == fundmeconst.OwnerKey {
			return "owner: " + address.Uint160ToString(h), nil
		}
		return "price feed: " + h.StringLE(), nil
	case fundmeconst.FundersCountKey:
		if len(key) != 1 {
			break
		}

		return "funders count: " + bigint.FromBytes(value).String(), nil
	case fundmeconst.FunderPrefix:
		h, err := util.Uint160DecodeBytesBE(value)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("funder #%s: %s", bigint.FromBytes(key[1:]), address.Uint160ToString(h)), nil
	case fundmeconst.LedgerPrefix:
		h, err := util.Uint160DecodeBytesBE(key[1:])
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("funded by %s: %s GAS", address.Uint160ToString(h),
			fixedn.ToString(bigint.FromBytes(value), fundmeconst.GASDecimals)), nil
	}

	return "", errors.New("unknown key")
}
