package main

import "github.com/KaramelBytes/lcexplorer/cmd"

func main() {
	cmd.Execute()
}
