package main

import "weather-chatbot/client/internal/cli"

func main() {
	cli.Execute()
}
