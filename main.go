package main

import "github.com/df07/go-pathtracer/cmd"

func main() {
	cmd.Execute()
}
