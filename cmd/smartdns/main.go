package main

import (
	"fmt"
	"os"

	"github.com/nitedns/smartdns"
)

var (
	version = "dev"
)

func main() {
	if err := smartdns.Run(smartdns.WithVersion(version)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
