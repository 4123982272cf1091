package main

import (
	"os"

	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
