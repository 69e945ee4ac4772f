package main

import (
	"github.com/kurakura967/go-elasticsearch-faker/cmd/esfaker/cmd"
)

func main() {
	cmd.Execute()
}
