package main

import (
	"github.com/mcoot/bankit-go/internal/cli"
)

func main() {
	cli.Execute()
}
