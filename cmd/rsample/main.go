// rsample prints a uniform random sample of its input lines, reading the input once.
package main

import (
	"os"
)

func main() {
	if err := Command().Execute(); err != nil {
		os.Exit(1)
	}
}
