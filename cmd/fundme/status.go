package main

import (
	"fmt"
	"io"
	"math/big"

	"github.com/nspcc-dev/fundme-contract/contracts/fundme/fundmeconst"
	"github.com/nspcc-dev/fundme-contract/rpc/fundme"
	"github.com/nspcc-dev/fundme-contract/rpc/pricefeed"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/encoding/fixedn"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/gas"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

type contribution struct {
	funder util.Uint160
	amount *big.Int
}

type status struct {
	contract  util.Uint160
	version   *big.Int
	owner     util.Uint160
	priceFeed util.Uint160
	price     *big.Int
	minimum   *big.Int
	balance   *big.Int

	// registry in contribution order, duplicates included
	funders []util.Uint160
	// ledger of unique funders in order of the first contribution
	ledger []contribution
}

func readStatus(inv fundme.Invoker, h util.Uint160) (*status, error) {
	var (
		st  = status{contract: h}
		r   = fundme.NewReader(inv, h)
		err error
	)

	st.version, err = r.Version()
	if err != nil {
		return nil, fmt.Errorf("get version: %w", err)
	}

	st.owner, err = r.GetOwner()
	if err != nil {
		return nil, fmt.Errorf("get owner: %w", err)
	}

	st.priceFeed, err = r.GetPriceFeed()
	if err != nil {
		return nil, fmt.Errorf("get price feed: %w", err)
	}

	st.price, err = pricefeed.NewReader(inv, st.priceFeed).LatestAnswer()
	if err != nil {
		return nil, fmt.Errorf("get latest price: %w", err)
	}

	st.minimum, err = r.GetMinimumUSD()
	if err != nil {
		return nil, fmt.Errorf("get minimum: %w", err)
	}

	st.balance, err = gas.NewReader(inv).BalanceOf(h)
	if err != nil {
		return nil, fmt.Errorf("get GAS balance: %w", err)
	}

	n, err := r.GetFundersCount()
	if err != nil {
		return nil, fmt.Errorf("get number of funders: %w", err)
	}

	seen := make(map[util.Uint160]struct{})

	for i := int64(0); i < n.Int64(); i++ {
		funder, err := r.GetFunders(big.NewInt(i))
		if err != nil {
			return nil, fmt.Errorf("get funder #%d: %w", i, err)
		}

		st.funders = append(st.funders, funder)

		if _, ok := seen[funder]; ok {
			continue
		}
		seen[funder] = struct{}{}

		amount, err := r.GetAddressToAmountFunded(funder)
		if err != nil {
			return nil, fmt.Errorf("get amount funded by %s: %w", address.Uint160ToString(funder), err)
		}

		st.ledger = append(st.ledger, contribution{funder: funder, amount: amount})
	}

	return &st, nil
}

func (st *status) print(w io.Writer) {
	fmt.Fprintf(w, "Contract:   %s (version %s)\n", st.contract.StringLE(), st.version)
	fmt.Fprintf(w, "Owner:      %s\n", address.Uint160ToString(st.owner))
	fmt.Fprintf(w, "Price feed: %s\n", st.priceFeed.StringLE())
	fmt.Fprintf(w, "Price:      %s USD/GAS\n", fixedn.ToString(st.price, fundmeconst.PriceDecimals))
	fmt.Fprintf(w, "Minimum:    %s USD\n", fixedn.ToString(st.minimum, fundmeconst.USDDecimals))
	if min := fundme.MinimumGAS(st.price); min != nil {
		fmt.Fprintf(w, "            %s GAS at the current price\n", fixedn.ToString(min, fundmeconst.GASDecimals))
	}
	fmt.Fprintf(w, "Balance:    %s GAS\n", fixedn.ToString(st.balance, fundmeconst.GASDecimals))
	fmt.Fprintf(w, "Contributions: %d\n", len(st.funders))

	for _, c := range st.ledger {
		fmt.Fprintf(w, "  %s: %s GAS\n", address.Uint160ToString(c.funder), fixedn.ToString(c.amount, fundmeconst.GASDecimals))
	}
}
