package main

import "github.com/theirongolddev/finmock/cmd"

func main() {
	cmd.Execute()
}
