package main

import (
	"os"

	"github.com/jdrew1303/etcher/app"
)

func main() {
	app.RunApp(os.Args)
}
