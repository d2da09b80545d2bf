package deploy

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"
)

// Blockchain groups services provided by particular Neo blockchain network
// that are required for FundMe deployment.
type Blockchain interface {
	// RPCActor groups functions needed to compose and send transactions.
	actor.RPCActor

	// GetContractStateByHash returns network state of the smart contract by its
	// address. GetContractStateByHash returns error with 'Unknown contract'
	// substring if requested contract is missing.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// CommonDeployPrm groups common deployment parameters of the smart contract.
type CommonDeployPrm struct {
	NEF      nef.File
	Manifest manifest.Manifest
}

// MockPriceFeedPrm groups deployment parameters of the mock price feed
// contract used in private networks lacking a real one.
type MockPriceFeedPrm struct {
	Common CommonDeployPrm

	// Price precision, usually 8.
	Decimals int64

	// Initial price of 1 GAS in USD with Decimals precision.
	Answer *big.Int
}

// Prm groups all parameters of the FundMe deployment procedure.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Particular Neo blockchain instance to deploy contracts to.
	Blockchain Blockchain

	// Local process account used for transaction signing (must be unlocked).
	// It also becomes an owner of FundMe contract if Owner is not set.
	LocalAccount *wallet.Account

	// Owner of FundMe contract receiving withdrawn funds.
	Owner util.Uint160

	// Address of the price feed contract.
	PriceFeed util.Uint160

	// Mock price feed to be deployed before FundMe when PriceFeed is not set.
	MockPriceFeed *MockPriceFeedPrm

	FundMe CommonDeployPrm

	// Number of blocks to wait after FundMe deployment.
	Confirmations uint32

	// Interval of the blockchain height polling while waiting for
	// confirmations. Defaults to 1s.
	PollInterval time.Duration
}

// Result groups addresses of the contracts used by FundMe deployment.
type Result struct {
	PriceFeed util.Uint160
	FundMe    util.Uint160
}

// Deploy deploys FundMe contract into the Neo network represented by given
// Prm.Blockchain and, optionally, the mock price feed before it.
//
// Deploy is idempotent: contracts which are already deployed by the local
// account are not deployed again. Deploy aborts by context or when the first
// error occurs.
func Deploy(ctx context.Context, prm Prm) (Result, error) {
	var res Result

	l := prm.Logger.With(zap.Stringer("run", uuid.New()))

	act, err := actor.NewSimple(prm.Blockchain, prm.LocalAccount)
	if err != nil {
		return res, fmt.Errorf("init transaction sender from local account: %w", err)
	}

	owner := prm.Owner
	if owner.Equals(util.Uint160{}) {
		owner = act.Sender()
	}

	switch {
	case !prm.PriceFeed.Equals(util.Uint160{}):
		res.PriceFeed = prm.PriceFeed

		_, err = prm.Blockchain.GetContractStateByHash(res.PriceFeed)
		if err != nil {
			return res, fmt.Errorf("get price feed contract %s state: %w", res.PriceFeed.StringLE(), err)
		}
	case prm.MockPriceFeed != nil:
		l.Info("deploying mock price feed contract...")

		res.PriceFeed, err = deployContract(ctx, l, prm.Blockchain, act, prm.MockPriceFeed.Common,
			[]any{prm.MockPriceFeed.Decimals, prm.MockPriceFeed.Answer})
		if err != nil {
			return res, fmt.Errorf("deploy mock price feed contract: %w", err)
		}

		l.Info("mock price feed contract is on the chain", zap.Stringer("address", res.PriceFeed))
	default:
		return res, errors.New("neither price feed address nor mock price feed is set")
	}

	l.Info("deploying FundMe contract...",
		zap.Stringer("owner", owner), zap.Stringer("price feed", res.PriceFeed))

	res.FundMe, err = deployContract(ctx, l, prm.Blockchain, act, prm.FundMe, []any{owner, res.PriceFeed})
	if err != nil {
		return res, fmt.Errorf("deploy FundMe contract: %w", err)
	}

	l.Info("FundMe contract is on the chain", zap.Stringer("address", res.FundMe))

	if prm.Confirmations > 0 {
		l.Info("waiting for confirmations...", zap.Uint32("blocks", prm.Confirmations))

		err = awaitConfirmations(ctx, prm.Blockchain, prm.Confirmations, prm.PollInterval)
		if err != nil {
			return res, fmt.Errorf("wait for confirmations: %w", err)
		}
	}

	return res, nil
}

// ContractAddress returns address of the contract deployed by the given
// sender.
func ContractAddress(sender util.Uint160, c CommonDeployPrm) util.Uint160 {
	return state.CreateContractHash(sender, c.NEF.Checksum, c.Manifest.Name)
}

func deployContract(ctx context.Context, l *zap.Logger, b Blockchain, act *actor.Actor, c CommonDeployPrm, data []any) (util.Uint160, error) {
	addr := ContractAddress(act.Sender(), c)

	deployed, err := isDeployed(b, addr)
	if err != nil {
		return addr, err
	}

	if deployed {
		l.Info("contract is already deployed, skip",
			zap.String("name", c.Manifest.Name), zap.Stringer("address", addr))
		return addr, nil
	}

	txHash, vub, err := management.New(act).Deploy(&c.NEF, &c.Manifest, data)
	if err != nil {
		return addr, fmt.Errorf("send deployment transaction: %w", err)
	}

	l.Info("deployment transaction sent, waiting for it to be accepted...",
		zap.String("name", c.Manifest.Name), zap.Stringer("tx", txHash), zap.Uint32("vub", vub))

	err = awaitHalt(ctx, act, txHash, vub)
	if err != nil {
		return addr, err
	}

	return addr, nil
}

func isDeployed(b Blockchain, addr util.Uint160) (bool, error) {
	_, err := b.GetContractStateByHash(addr)
	if err == nil {
		return true, nil
	}

	if isErrContractNotFound(err) {
		return false, nil
	}

	return false, fmt.Errorf("get contract %s state: %w", addr.StringLE(), err)
}

func isErrContractNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Unknown contract")
}

// awaitHalt waits for the transaction to be accepted and checks that it was
// successfully executed.
func awaitHalt(ctx context.Context, act *actor.Actor, txHash util.Uint256, vub uint32) error {
	aer, err := act.WaitAny(ctx, vub, txHash)
	if err != nil {
		return fmt.Errorf("wait for transaction %s: %w", txHash.StringLE(), err)
	}

	if aer.VMState != vmstate.Halt {
		return errors.New("transaction " + txHash.StringLE() + " failed: " + aer.FaultException)
	}

	return nil
}

// awaitConfirmations waits until the given number of blocks is added to the
// blockchain since the call.
func awaitConfirmations(ctx context.Context, b Blockchain, n uint32, interval time.Duration) error {
	start, err := b.GetBlockCount()
	if err != nil {
		return fmt.Errorf("get block count: %w", err)
	}

	if interval <= 0 {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		cur, err := b.GetBlockCount()
		if err != nil {
			return fmt.Errorf("get block count: %w", err)
		}

		if cur >= start+n {
			return nil
		}
	}
}
