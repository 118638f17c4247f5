// Command khash computes SHA3, cSHAKE256, or KMACXOF256 digests of a
// file or stdin.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/NWc0de/KeccakUtils/internal/cliutil"
	"github.com/NWc0de/KeccakUtils/keccak"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("khash", flag.ContinueOnError)
	op := fs.String("op", "SHA3", "digest to compute: SHA3, cSHAKE256, or KMACXOF256")
	inPath := fs.String("f", "", "input file path (reads stdin if absent)")
	keyPath := fs.String("k", "", "key file path (required for KMACXOF256)")
	customStr := fs.String("cs", "", "customization string (cSHAKE256 only)")
	outBits := fs.Int("l", 512, "output length in bits")
	outPath := fs.String("w", "", "optional path to write raw digest bytes")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	input, err := cliutil.ReadInput(*inPath)
	if err != nil {
		logger.Error("read input", "err", err)
		return 1
	}

	var digest []byte
	switch *op {
	case "SHA3":
		digest, err = keccak.SHA3(input, *outBits)
	case "cSHAKE256":
		digest, err = keccak.CShake256(input, *outBits, "", *customStr)
	case "KMACXOF256":
		if *keyPath == "" {
			logger.Error("KMACXOF256 requires -k <keyfile>")
			return 1
		}
		key, kerr := cliutil.ReadInput(*keyPath)
		if kerr != nil {
			logger.Error("read key file", "err", kerr)
			return 1
		}
		digest, err = keccak.KMACXOF256(key, input, *outBits, "")
	default:
		logger.Error("unknown op", "op", *op)
		return 1
	}
	if err != nil {
		logger.Error("compute digest", "op", *op, "err", err)
		return 1
	}

	fmt.Println(cliutil.ToHex(digest))

	if *outPath != "" {
		if err := cliutil.WriteOutput(*outPath, digest); err != nil {
			logger.Error("write digest", "err", err)
			return 1
		}
	}
	return 0
}
