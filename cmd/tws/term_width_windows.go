//go:build windows

package main

import (
	"os"
	"strconv"
)

// No ioctl on windows; COLUMNS is the only hint.
func detectTerminalWidth() int {
	return columnsEnv()
}

func columnsEnv() int {
	if cols, ok := os.LookupEnv("COLUMNS"); ok {
		if n, err := strconv.Atoi(cols); err == nil && n > 0 {
			return n
		}
	}
	return 0
}
