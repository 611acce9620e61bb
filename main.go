/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/CampusHub/campushub-roster-services/cmd"

func main() {
	cmd.Execute()
}
