package main

import "github.com/calai-app/calai/cmd/calai"

func main() {
	calai.Execute()
}
