package main

import (
	"browser-tools/internal/bootstrap"
)

func main() {
	bootstrap.NewApp().Run()
}
