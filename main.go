/*
Copyright © 2025 Meera Pillai <meera@renokit.dev>
*/
package main

import "github.com/renokit/reno/cmd"

func main() {
	cmd.Execute()
}
