package main

import "github.com/cordial-cms/cordial-cms/cmd"

func main() {
	cmd.Execute()
}
