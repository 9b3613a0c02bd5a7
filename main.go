// Package main RepoWatch upstream synchronization monitor
package main

import "github.com/repowatch/repowatch/internal"

func main() {
	internal.Run()
}
