package main

import "github.com/thirdweb-dev/chain-monitor/cmd"

func main() {
	cmd.Execute()
}
