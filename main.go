package main

import "github.com/DevelopwithSabbir/Tuition-Media-Website-Complete-Development/cmd"

func main() {
	cmd.Execute()
}
