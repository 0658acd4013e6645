package main

import (
	"log"

	"academy-system/cmd"
	_ "academy-system/migrations"
)

func main() {
	if err := cmd.Start(); err != nil {
		log.Fatal(err)
	}
}
