package main

import (
	"log"

	"github.com/spigell/cv-matcher/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
