// Package config describes networks FundMe is deployed to and the wallet
// used by the command-line tool.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding values from the configuration file.
const (
	EnvRPCEndpoint    = "FUNDME_RPC_ENDPOINT"
	EnvWallet         = "FUNDME_WALLET"
	EnvWalletPassword = "FUNDME_WALLET_PASSWORD"
	EnvNetwork        = "FUNDME_NETWORK"
)

var (
	// ErrUnknownNetwork is returned when requested network is not configured.
	ErrUnknownNetwork = errors.New("unknown network")

	// ErrMissingPriceFeed is returned when live network lacks price feed
	// address.
	ErrMissingPriceFeed = errors.New("price feed is required for non-development network")

	// ErrMissingRPCEndpoint is returned when network lacks RPC endpoint.
	ErrMissingRPCEndpoint = errors.New("missing RPC endpoint")
)

// Config is a root of the configuration file.
type Config struct {
	DefaultNetwork string             `yaml:"default_network"`
	Networks       map[string]Network `yaml:"networks"`
	Wallet         Wallet             `yaml:"wallet"`
}

// Network describes particular Neo network.
type Network struct {
	// Name of the network, set from the key of the networks section.
	Name string `yaml:"-"`

	RPCEndpoint string `yaml:"rpc_endpoint"`

	// Development networks get mock price feed deployed.
	Development bool `yaml:"development"`

	// Addresses of the contracts as LE strings with optional 0x prefix.
	PriceFeed string `yaml:"price_feed"`
	FundMe    string `yaml:"fundme"`

	// Number of blocks to wait for after deployment.
	Confirmations uint32 `yaml:"confirmations"`
}

// Wallet references NEP-6 wallet and the account in it.
type Wallet struct {
	Path     string `yaml:"path"`
	Address  string `yaml:"address"`
	Password string `yaml:"-"`
}

// LoadEnv loads environment variables from the given .env files. Missing
// files are skipped.
func LoadEnv(files ...string) error {
	for _, f := range files {
		err := godotenv.Load(f)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}

	return nil
}

// Load reads configuration file and applies environment overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return c, nil
}

// Parse decodes YAML configuration and applies environment overrides.
func Parse(data []byte) (*Config, error) {
	var c Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	err := dec.Decode(&c)
	if err != nil {
		return nil, err
	}

	for name, n := range c.Networks {
		n.Name = name
		c.Networks[name] = n
	}

	if v := os.Getenv(EnvNetwork); v != "" {
		c.DefaultNetwork = v
	}
	if v := os.Getenv(EnvWallet); v != "" {
		c.Wallet.Path = v
	}
	c.Wallet.Password = os.Getenv(EnvWalletPassword)

	return &c, nil
}

// Network returns validated network by name. Empty name selects the default
// network.
func (c *Config) Network(name string) (Network, error) {
	if name == "" {
		name = c.DefaultNetwork
	}

	n, ok := c.Networks[name]
	if !ok {
		return n, fmt.Errorf("%w: %q", ErrUnknownNetwork, name)
	}

	if v := os.Getenv(EnvRPCEndpoint); v != "" {
		n.RPCEndpoint = v
	}

	if n.RPCEndpoint == "" {
		return n, fmt.Errorf("network %s: %w", name, ErrMissingRPCEndpoint)
	}

	if n.PriceFeed == "" && !n.Development {
		return n, fmt.Errorf("network %s: %w", name, ErrMissingPriceFeed)
	}

	if n.PriceFeed != "" {
		if _, err := parseHash(n.PriceFeed); err != nil {
			return n, fmt.Errorf("network %s: invalid price feed: %w", name, err)
		}
	}

	if n.FundMe != "" {
		if _, err := parseHash(n.FundMe); err != nil {
			return n, fmt.Errorf("network %s: invalid FundMe address: %w", name, err)
		}
	}

	return n, nil
}

// PriceFeedHash returns address of the price feed. Zero address is returned
// if it is not configured.
func (n Network) PriceFeedHash() (util.Uint160, error) {
	if n.PriceFeed == "" {
		return util.Uint160{}, nil
	}
	return parseHash(n.PriceFeed)
}

// FundMeHash returns address of the deployed FundMe contract.
func (n Network) FundMeHash() (util.Uint160, error) {
	if n.FundMe == "" {
		return util.Uint160{}, fmt.Errorf("FundMe address is not configured for network %s", n.Name)
	}
	return parseHash(n.FundMe)
}

func parseHash(s string) (util.Uint160, error) {
	return util.Uint160DecodeStringLE(strings.TrimPrefix(s, "0x"))
}
