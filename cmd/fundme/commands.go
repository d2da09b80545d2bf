package main

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"path/filepath"
	"time"

	"github.com/nspcc-dev/fundme-contract/contracts"
	"github.com/nspcc-dev/fundme-contract/contracts/fundme/fundmeconst"
	"github.com/nspcc-dev/fundme-contract/deploy"
	"github.com/nspcc-dev/fundme-contract/rpc/fundme"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/encoding/fixedn"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/gas"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

// initialMockPrice is 2000 USD per GAS.
var initialMockPrice = big.NewInt(2000_0000_0000)

func deployAction(c *cli.Context) error {
	b, err := newRemoteBlockchain(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer b.close()

	acc, err := b.account()
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	artifacts := c.String("artifacts")

	fm, err := contracts.ReadDir(filepath.Join(artifacts, contracts.FundMeDir))
	if err != nil {
		return cli.NewExitError(fmt.Errorf("read FundMe contract: %w", err), 1)
	}

	prm := deploy.Prm{
		Logger:        b.log,
		Blockchain:    b.rpc,
		LocalAccount:  acc,
		FundMe:        deploy.CommonDeployPrm{NEF: fm.NEF, Manifest: fm.Manifest},
		Confirmations: b.network.Confirmations,
	}

	if s := c.String("owner"); s != "" {
		prm.Owner, err = address.StringToUint160(s)
		if err != nil {
			return cli.NewExitError(fmt.Errorf("invalid owner address: %w", err), 1)
		}
	}

	prm.PriceFeed, err = b.network.PriceFeedHash()
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	if prm.PriceFeed.Equals(util.Uint160{}) && b.network.Development {
		feed, err := contracts.ReadDir(filepath.Join(artifacts, contracts.PriceFeedDir))
		if err != nil {
			return cli.NewExitError(fmt.Errorf("read mock price feed contract: %w", err), 1)
		}

		prm.MockPriceFeed = &deploy.MockPriceFeedPrm{
			Common:   deploy.CommonDeployPrm{NEF: feed.NEF, Manifest: feed.Manifest},
			Decimals: fundmeconst.PriceDecimals,
			Answer:   initialMockPrice,
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	res, err := deploy.Deploy(ctx, prm)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	fmt.Fprintf(c.App.Writer, "Price feed: %s\n", res.PriceFeed.StringLE())
	fmt.Fprintf(c.App.Writer, "FundMe:     %s\n", res.FundMe.StringLE())

	return nil
}

func fundAction(c *cli.Context) error {
	amount, err := parseGAS(c.String("amount"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	b, err := newRemoteBlockchain(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer b.close()

	h, err := b.network.FundMeHash()
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	usd, err := fundme.NewReader(b.invoker, h).GetConversionRate(amount)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("get conversion rate: %w", err), 1)
	}

	if usd.Cmp(fundme.MinimumUSD()) < 0 {
		return cli.NewExitError(fmt.Errorf("%s GAS is worth %s USD: %s",
			fixedn.ToString(amount, fundmeconst.GASDecimals),
			fixedn.ToString(usd, fundmeconst.USDDecimals),
			fundmeconst.ErrInsufficientFunding), 1)
	}

	acc, err := b.account()
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	// funder witness is checked by both FundMe and GAS contracts
	act, err := actor.New(b.rpc, []actor.SignerAccount{{
		Signer: transaction.Signer{
			Account:          acc.ScriptHash(),
			Scopes:           transaction.CustomContracts,
			AllowedContracts: []util.Uint160{h, gas.Hash},
		},
		Account: acc,
	}})
	if err != nil {
		return cli.NewExitError(fmt.Errorf("init actor: %w", err), 1)
	}

	txHash, vub, err := fundme.New(act, h).Fund(acc.ScriptHash(), amount)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("send fund transaction: %w", err), 1)
	}

	b.log.Info("fund transaction sent", zap.Stringer("tx", txHash))

	_, err = await(act, txHash, vub)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	appLog, err := b.rpc.GetApplicationLog(txHash, nil)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("get application log: %w", err), 1)
	}

	events, err := fundme.FundedEventsFromApplicationLog(appLog)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	for _, e := range events {
		fmt.Fprintf(c.App.Writer, "Funded: %s %s GAS\n",
			address.Uint160ToString(e.Funder), fixedn.ToString(e.Amount, fundmeconst.GASDecimals))
	}

	return nil
}

func withdrawAction(c *cli.Context) error {
	b, err := newRemoteBlockchain(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer b.close()

	h, err := b.network.FundMeHash()
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	acc, err := b.account()
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	act, err := actor.NewSimple(b.rpc, acc)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("init actor: %w", err), 1)
	}

	var (
		contract = fundme.New(act, h)
		txHash   util.Uint256
		vub      uint32
		method   = "withdraw"
	)

	if c.Bool("cheaper") {
		method = "cheaperWithdraw"
		txHash, vub, err = contract.CheaperWithdraw()
	} else {
		txHash, vub, err = contract.Withdraw()
	}
	if err != nil {
		return cli.NewExitError(fmt.Errorf("send %s transaction: %w", method, err), 1)
	}

	b.log.Info("withdrawal transaction sent", zap.String("method", method), zap.Stringer("tx", txHash))

	aer, err := await(act, txHash, vub)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	appLog, err := b.rpc.GetApplicationLog(txHash, nil)
	if err != nil {
		return cli.NewExitError(fmt.Errorf("get application log: %w", err), 1)
	}

	events, err := fundme.WithdrawnEventsFromApplicationLog(appLog)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	for _, e := range events {
		fmt.Fprintf(c.App.Writer, "Withdrawn: %s GAS to %s\n",
			fixedn.ToString(e.Amount, fundmeconst.GASDecimals), address.Uint160ToString(e.Owner))
	}

	fmt.Fprintf(c.App.Writer, "GAS consumed by %s: %s\n",
		method, fixedn.ToString(big.NewInt(aer.GasConsumed), fundmeconst.GASDecimals))

	return nil
}

func statusAction(c *cli.Context) error {
	b, err := newRemoteBlockchain(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer b.close()

	h, err := b.network.FundMeHash()
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	st, err := readStatus(b.invoker, h)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	st.print(c.App.Writer)

	return nil
}

func parseGAS(s string) (*big.Int, error) {
	if s == "" {
		return nil, errors.New("missing GAS amount")
	}

	amount, err := fixedn.FromString(s, fundmeconst.GASDecimals)
	if err != nil {
		return nil, fmt.Errorf("invalid GAS amount %q: %w", s, err)
	}

	if amount.Sign() <= 0 {
		return nil, fmt.Errorf("GAS amount must be positive: %s", s)
	}

	return amount, nil
}
