package main

import (
	"github.com/findy-network/findy-agent-hook/cmd"
)

func main() {
	cmd.Execute()
}
