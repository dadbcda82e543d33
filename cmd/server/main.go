package main

import "bmbat/go_backend/internal/app"

func main() {
	app.Run()
}
