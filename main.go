package main

import "cinema-box-office/cmd"

func main() {
	cmd.Execute()
}
