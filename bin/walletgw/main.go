package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lazyfrontier/walletgw/pkgs/walletauthgw"
)

var configFilePath string

func main() {
	flag.StringVar(&configFilePath, "c", "config.json", "config file")
	flag.Parse()

	cfg, err := walletauthgw.NewConfig(configFilePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	rt, err := walletauthgw.NewRuntime(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := rt.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
