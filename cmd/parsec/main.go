// parsec generates publication-style figure reports for cosmological
// simulation runs.
//
// Usage:
//
//	parsec report -C <config-dir> -s <snapshot>... -c <catalogue>... [-i <input-dir>...] -o <output-dir>
//	parsec inspect <metadata.yml>
//
// One snapshot runs standalone mode: figures are computed from the halo
// catalogue and reusable plot metadata is exported next to the input data.
// Two or more snapshots run comparison mode: composite overlay figures are
// reconstructed from each run's previously exported metadata.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
