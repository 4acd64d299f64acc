package main

import "github.com/frahmantamala/warehouse-productivity/cmd"

func main() {
	cmd.Execute()
}
