package main

import "github.com/pfrederiksen/covid-widget/internal/cli"

func main() {
	cli.Execute()
}
