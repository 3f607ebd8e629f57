// Command neo explores near-Earth objects and their close approaches to Earth.
package main

import "github.com/papapumpkin/neo/cmd"

func main() {
	cmd.Execute()
}
