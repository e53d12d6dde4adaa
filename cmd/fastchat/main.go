package main

import "github.com/Utkarsh4517/fast-chat/internal/cli"

func main() {
	cli.Execute()
}
