package main

import (
	"context"
	"fmt"
	"time"

	"github.com/nspcc-dev/fundme-contract/internal/config"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

// remoteBlockchain is a wrapper over Neo RPC client providing services
// needed for FundMe commands.
type remoteBlockchain struct {
	log     *zap.Logger
	network config.Network
	wallet  config.Wallet

	rpc     *rpcclient.Client
	invoker *invoker.Invoker
}

// newRemoteBlockchain reads configuration referenced by the global flags and
// dials Neo RPC server of the selected network. Connection and all requests
// are done within 15s timeout.
func newRemoteBlockchain(c *cli.Context) (*remoteBlockchain, error) {
	log, err := newLogger(c.GlobalBool("debug"))
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	err = config.LoadEnv(c.GlobalStringSlice("env")...)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(c.GlobalString("config"))
	if err != nil {
		return nil, err
	}

	n, err := cfg.Network(c.GlobalString("network"))
	if err != nil {
		return nil, err
	}

	cl, err := rpcclient.New(context.Background(), n.RPCEndpoint, rpcclient.Options{
		DialTimeout:    15 * time.Second,
		RequestTimeout: 15 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("RPC client dial: %w", err)
	}

	err = cl.Init()
	if err != nil {
		cl.Close()
		return nil, fmt.Errorf("init RPC client: %w", err)
	}

	log.Debug("connected to the network",
		zap.String("network", n.Name), zap.String("endpoint", n.RPCEndpoint))

	return &remoteBlockchain{
		log:     log,
		network: n,
		wallet:  cfg.Wallet,
		rpc:     cl,
		invoker: invoker.New(cl, nil),
	}, nil
}

func (x *remoteBlockchain) close() {
	x.rpc.Close()
	_ = x.log.Sync()
}

// account opens configured wallet and returns decrypted account from it.
// Configured address is used if set, otherwise the default account is.
func (x *remoteBlockchain) account() (*wallet.Account, error) {
	if x.wallet.Path == "" {
		return nil, fmt.Errorf("wallet is not configured, set %s", config.EnvWallet)
	}

	w, err := wallet.NewWalletFromFile(x.wallet.Path)
	if err != nil {
		return nil, fmt.Errorf("open wallet: %w", err)
	}
	defer w.Close()

	var acc *wallet.Account

	if x.wallet.Address != "" {
		h, err := address.StringToUint160(x.wallet.Address)
		if err != nil {
			return nil, fmt.Errorf("invalid wallet address: %w", err)
		}

		acc = w.GetAccount(h)
		if acc == nil {
			return nil, fmt.Errorf("account %s is missing in the wallet", x.wallet.Address)
		}
	} else {
		acc = w.GetAccount(w.GetChangeAddress())
		if acc == nil {
			return nil, fmt.Errorf("wallet %s has no default account", x.wallet.Path)
		}
	}

	err = acc.Decrypt(x.wallet.Password, w.Scrypt)
	if err != nil {
		return nil, fmt.Errorf("decrypt account %s: %w", acc.Address, err)
	}

	return acc, nil
}

// await waits for the transaction to be persisted and checks it HALTed.
func await(act *actor.Actor, txHash util.Uint256, vub uint32) (*state.AppExecResult, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	aer, err := act.WaitAny(ctx, vub, txHash)
	if err != nil {
		return nil, fmt.Errorf("wait for transaction %s: %w", txHash.StringLE(), err)
	}

	if aer.VMState != vmstate.Halt {
		return aer, fmt.Errorf("transaction %s failed: %s", txHash.StringLE(), aer.FaultException)
	}

	return aer, nil
}

// iterateContractStorage iterates over all storage items of the Neo smart
// contract referenced by given address and passes them into f.
// iterateContractStorage breaks on any f's error and returns it.
func (x *remoteBlockchain) iterateContractStorage(contract util.Uint160, f func(key, value []byte) error) error {
	nLatestBlock, err := x.rpc.GetBlockCount()
	if err != nil {
		return fmt.Errorf("get number of the latest block: %w", err)
	}

	stateRoot, err := x.rpc.GetStateRootByHeight(nLatestBlock - 1)
	if err != nil {
		return fmt.Errorf("get state root at penult block #%d: %w", nLatestBlock-1, err)
	}

	var start []byte

	for {
		res, err := x.rpc.FindStates(stateRoot.Root, contract, nil, start, nil)
		if err != nil {
			return fmt.Errorf("get historical storage items of the requested contract at state root '%s': %w", stateRoot.Root, err)
		}

		for i := range res.Results {
			err = f(res.Results[i].Key, res.Results[i].Value)
			if err != nil {
				return err
			}
		}

		if !res.Truncated {
			return nil
		}

		start = res.Results[len(res.Results)-1].Key
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	return cfg.Build()
}
