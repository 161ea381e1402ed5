package main

import "crm-matcher/cmd"

func main() {
	cmd.Execute()
}
