// Command kcipher encrypts or decrypts data under a password using the
// symmetric authenticated-encryption scheme.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/NWc0de/KeccakUtils/internal/cliutil"
	"github.com/NWc0de/KeccakUtils/ske"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("kcipher", flag.ContinueOnError)
	encrypt := fs.Bool("e", false, "encrypt")
	decrypt := fs.Bool("d", false, "decrypt")
	inPath := fs.String("f", "", "input file path")
	pws := fs.String("pws", "", "password given directly on the command line")
	pwf := fs.String("pwf", "", "path to a file containing the password")
	outPath := fs.String("o", "", "output file path")
	ignoreTag := fs.Bool("i", false, "ignore tag mismatch on decrypt")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if *encrypt == *decrypt {
		logger.Error("exactly one of -e or -d is required")
		return 1
	}
	if (*pws == "") == (*pwf == "") {
		logger.Error("exactly one of -pws or -pwf is required")
		return 1
	}
	if *outPath == "" {
		logger.Error("-o <outpath> is required")
		return 1
	}

	password, err := resolvePassword(*pws, *pwf)
	if err != nil {
		logger.Error("resolve password", "err", err)
		return 1
	}

	input, err := cliutil.ReadInput(*inPath)
	if err != nil {
		logger.Error("read input", "err", err)
		return 1
	}

	if *encrypt {
		record, err := ske.Encrypt(password, input)
		if err != nil {
			logger.Error("encrypt", "err", err)
			return 1
		}
		if err := cliutil.WriteOutput(*outPath, record); err != nil {
			logger.Error("write output", "err", err)
			return 1
		}
		return 0
	}

	valid, plaintext, err := ske.Decrypt(password, input)
	if err != nil {
		logger.Error("decrypt", "err", err)
		return 1
	}
	if !valid && !*ignoreTag {
		fmt.Fprintln(os.Stderr, "warning: authentication tag mismatch, output not written (use -i to override)")
		return 1
	}
	if err := cliutil.WriteOutput(*outPath, plaintext); err != nil {
		logger.Error("write output", "err", err)
		return 1
	}
	return 0
}

func resolvePassword(pws, pwf string) ([]byte, error) {
	if pws != "" {
		return []byte(pws), nil
	}
	data, err := cliutil.ReadInput(pwf)
	if err != nil {
		return nil, err
	}
	return []byte(strings.TrimRight(string(data), "\r\n")), nil
}
