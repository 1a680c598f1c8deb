package main

import "github.com/Lemminkyinen/clockify-flex/cmd"

func main() {
	cmd.Execute()
}
