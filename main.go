package main

import "github.com/Pjt727/odautofill/cmd"

func main() {
	cmd.Execute()
}
