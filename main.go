package main

import "github.com/ThatOtherAndrew/ecodigital/cmd"

func main() {
	cmd.Execute()
}
