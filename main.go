package main

import "jfront/cmd"

func main() {
	cmd.Execute()
}
