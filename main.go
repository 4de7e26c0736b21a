package main

import "github.com/samuli/bike-logs/cmd"

func main() {
	cmd.Execute()
}
