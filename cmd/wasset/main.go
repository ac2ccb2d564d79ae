// Command wasset embeds asset folders into WebAssembly modules and inspects
// the result.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
