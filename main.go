package main

import "mvcs-loader/cmd"

func main() {
	cmd.Execute()
}
