/*
Copyright © 2022 Daniils Petrovs <thedanpetrov@gmail.com>

*/
package main

import "github.com/DaniruKun/watermark-detector/cmd"

func main() {
	cmd.Execute()
}
