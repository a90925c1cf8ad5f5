package main

import "github.com/zellohq/devportal/cmd"

func main() {
	cmd.Execute()
}
