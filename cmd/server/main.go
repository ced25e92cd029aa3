package main

import (
	"log"

	"github.com/dmitrijs2005/zkpauth/internal/server"
)

func main() {

	if err := server.Main(); err != nil {
		log.Fatalf("%v", err)
	}

}
