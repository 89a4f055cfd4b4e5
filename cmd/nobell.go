package cmd

import (
	"github.com/chzyer/readline"
)

// noBellStdout filters the terminal bell out of promptui's output so that
// list navigation does not beep on every keystroke.
type noBellStdout struct{}

func (n *noBellStdout) Write(p []byte) (int, error) {
	if len(p) == 1 && p[0] == readline.CharBell {
		return 0, nil
	}
	return readline.Stdout.Write(p)
}

func (n *noBellStdout) Close() error {
	return readline.Stdout.Close()
}

var NoBellStdout = &noBellStdout{}
