package main

import "github.com/ytget/yt-search/internal/cli"

func main() {
	cli.Execute()
}
