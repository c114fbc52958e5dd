package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/meltano/kubernetes-ext/cmd"
	"github.com/meltano/kubernetes-ext/config"
)

var errRequestFail = errors.New("unable to complete request successfully")

func main() {
	configuration, err := config.Load()
	if err != nil {
		fmt.Printf("ERROR: %s\n", err.Error())
		os.Exit(1)
	}

	command := cmd.New(configuration)
	if err := command.Execute(); err != nil {
		fmt.Println(errRequestFail)
		os.Exit(1)
	}
}
