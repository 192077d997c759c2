package main

import "github.com/roadline-app/roadline/cmd"

func main() {
	cmd.Execute()
}
