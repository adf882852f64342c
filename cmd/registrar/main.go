package main

import "github.com/openswoop/registrar/cmd"

func main() {
	cmd.Execute()
}
