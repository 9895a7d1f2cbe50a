package main

import (
	"github.com/cortana-monitor/cortana/pkg/cli"
)

func main() {
	cli.Execute()
}
