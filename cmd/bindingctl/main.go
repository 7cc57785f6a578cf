package main

import "github.com/saeid-a/BindingStudio/cmd/bindingctl/cmd"

func main() {
	cmd.Execute()
}
