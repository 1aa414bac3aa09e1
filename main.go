package main

import "github.com/vmspawn/vmspawn/cmd"

func main() {
	cmd.Execute()
}
