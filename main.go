package main

import "mergington-activities/cmd/server"

func main() {
	server.Init().Run()
}
