package main

import (
	"os"

	"github.com/km-arc/go-fixture/app"
	"github.com/km-arc/go-fixture/framework/cli"
)

func main() {
	os.Exit(cli.Execute(app.ShopFixtures{}))
}
