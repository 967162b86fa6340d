package main

import "taskmanager/internal/app"

func main() {
	app.Run()
}
