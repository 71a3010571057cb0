/*
Copyright © 2026 Paulo Suderio
*/
package main

import "github.com/suderio/d20go/cmd"

func main() {
	cmd.Execute()
}
