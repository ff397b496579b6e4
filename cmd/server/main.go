package main

import "aiowedding/internal/app"

func main() {
	app.Run()
}
