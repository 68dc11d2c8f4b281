// Command radflow compiles RAD cluster configurations into RAD-Sim inputs.
package main

import "github.com/sarchlab/radflow/radflow/cmd"

func main() {
	cmd.Execute()
}
