// This program provides a command line client for the dashboard.
package main

import "github.com/inkwell/dashboard/app/tooling/inkwell/cmd"

func main() {
	cmd.Execute()
}
