package main

import (
	"fmt"
	"os"

	"github.com/nspcc-dev/fundme-contract/common"
	"github.com/urfave/cli"
)

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "fundme"
	app.Usage = "Deploy and operate FundMe contract"
	app.Version = fmt.Sprintf("%d.%d.%d", common.Version/1_000_000, common.Version/1_000%1_000, common.Version%1_000)
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "Path to the network configuration file",
			Value: "config.yml",
		},
		cli.StringFlag{
			Name:  "network, n",
			Usage: "Network from the configuration file (default one if empty)",
		},
		cli.StringSliceFlag{
			Name:  "env",
			Usage: "Files with environment variables, missing files are skipped",
			Value: &cli.StringSlice{".env"},
		},
		cli.BoolFlag{
			Name:  "debug, d",
			Usage: "Enable debug logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "deploy",
			Usage: "Deploy FundMe contract (and mock price feed to development networks)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "artifacts",
					Usage: "Repository root with compiled contracts",
					Value: ".",
				},
				cli.StringFlag{
					Name:  "owner",
					Usage: "Owner address (wallet account if empty)",
				},
			},
			Action: deployAction,
		},
		{
			Name:      "fund",
			Usage:     "Contribute GAS to FundMe contract",
			ArgsUsage: "--amount <GAS>",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "amount",
					Usage: "Amount of GAS to contribute, e.g. 0.03",
				},
			},
			Action: fundAction,
		},
		{
			Name:  "withdraw",
			Usage: "Withdraw all collected GAS to the owner",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "cheaper",
					Usage: "Use cheaperWithdraw method",
				},
			},
			Action: withdrawAction,
		},
		{
			Name:   "status",
			Usage:  "Print state of FundMe contract",
			Action: statusAction,
		},
		{
			Name:   "storage",
			Usage:  "Print decoded storage of FundMe contract",
			Action: storageAction,
		},
	}

	return app
}
