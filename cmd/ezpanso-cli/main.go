package main

import "ezpanso/cmd/ezpanso-cli/cmd"

func main() {
	cmd.Execute()
}
