package main

import (
	"github.com/MeKo-Tech/langtab/cmd/langtab/cmd"
)

func main() {
	cmd.Execute()
}
