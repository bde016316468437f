package main

import "github.com/masmgr/gitfeed/cmd"

func main() {
	cmd.Run()
}
