package main

import "netmapper/cmd"

func main() {
	cmd.Execute()
}
