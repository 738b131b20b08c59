package main

import "github.com/iksnae/thread-digest/cmd"

func main() {
	cmd.Execute()
}
