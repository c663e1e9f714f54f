package main

import "github.com/inovacc/memolist/cmd"

func main() {
	cmd.Execute()
}
