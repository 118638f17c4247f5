// Command ecutils exposes key generation, ECDHIES encrypt/decrypt, and
// Schnorr sign/verify over E_521.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/NWc0de/KeccakUtils/ecsvc"
	"github.com/NWc0de/KeccakUtils/internal/cliutil"
	"github.com/NWc0de/KeccakUtils/keyfile"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("ecutils", flag.ContinueOnError)
	op := fs.String("op", "", "operation: keygen, encrypt, decrypt, sign, or verify")
	pubPath := fs.String("pub", "", "public key file path")
	prvPath := fs.String("prv", "", "private key file path")
	genPwd := fs.String("pwd", "", "key-pair generation password")
	filePwd := fs.String("rpwd", "", "private-key file password (defaults to -pwd)")
	dataPath := fs.String("f", "", "data file path")
	sigPath := fs.String("s", "", "signature file path")
	outPath := fs.String("o", "", "output file path")
	owner := fs.String("owner", "", "owner name recorded with a freshly generated key (keygen only)")
	if err := fs.Parse(args); err != nil {
		return 1
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	switch *op {
	case "keygen":
		return doKeygen(logger, *genPwd, *filePwd, *owner, *pubPath, *prvPath, *outPath)
	case "encrypt":
		return doEncrypt(logger, *pubPath, *dataPath, *outPath)
	case "decrypt":
		return doDecrypt(logger, *prvPath, *genPwd, *filePwd, *dataPath, *outPath)
	case "sign":
		return doSign(logger, *prvPath, *genPwd, *filePwd, *dataPath, *outPath)
	case "verify":
		return doVerify(logger, *pubPath, *dataPath, *sigPath)
	default:
		logger.Error("unknown or missing -op", "op", *op)
		return 1
	}
}

func doKeygen(logger *slog.Logger, genPwd, filePwd, owner, pubPath, prvPath, metaPath string) int {
	if genPwd == "" || pubPath == "" || prvPath == "" {
		logger.Error("keygen requires -pwd, -pub, and -prv")
		return 1
	}
	if metaPath == "" {
		metaPath = prvPath + ".meta.json"
	}
	_, _, err := keyfile.GenerateAndWrite([]byte(genPwd), owner, filePwd, pubPath, prvPath, metaPath, cliutil.WriteOutput)
	if err != nil {
		logger.Error("generate key pair", "err", err)
		return 1
	}
	return 0
}

func doEncrypt(logger *slog.Logger, pubPath, dataPath, outPath string) int {
	if pubPath == "" || outPath == "" {
		logger.Error("encrypt requires -pub and -o")
		return 1
	}
	pubRaw, err := cliutil.ReadInput(pubPath)
	if err != nil {
		logger.Error("read public key", "err", err)
		return 1
	}
	pub, err := keyfile.LoadPublicKey(pubRaw)
	if err != nil {
		logger.Error("load public key", "err", err)
		return 1
	}
	data, err := cliutil.ReadInput(dataPath)
	if err != nil {
		logger.Error("read input", "err", err)
		return 1
	}
	record, err := ecsvc.EncryptEC(pub, data)
	if err != nil {
		logger.Error("encrypt", "err", err)
		return 1
	}
	if err := cliutil.WriteOutput(outPath, record); err != nil {
		logger.Error("write output", "err", err)
		return 1
	}
	return 0
}

func doDecrypt(logger *slog.Logger, prvPath, genPwd, filePwd, dataPath, outPath string) int {
	if prvPath == "" || genPwd == "" || outPath == "" {
		logger.Error("decrypt requires -prv, -pwd, and -o")
		return 1
	}
	kp, err := loadKeyPair(prvPath, genPwd, filePwd)
	if err != nil {
		logger.Error("load private key", "err", err)
		return 1
	}
	record, err := cliutil.ReadInput(dataPath)
	if err != nil {
		logger.Error("read input", "err", err)
		return 1
	}
	valid, plaintext, err := ecsvc.DecryptEC(kp.PrvScalar, record)
	if err != nil {
		logger.Error("decrypt", "err", err)
		return 1
	}
	if !valid {
		fmt.Fprintln(os.Stderr, "warning: authentication tag mismatch, output not written")
		return 1
	}
	if err := cliutil.WriteOutput(outPath, plaintext); err != nil {
		logger.Error("write output", "err", err)
		return 1
	}
	return 0
}

func doSign(logger *slog.Logger, prvPath, genPwd, filePwd, dataPath, outPath string) int {
	if prvPath == "" || genPwd == "" || outPath == "" {
		logger.Error("sign requires -prv, -pwd, and -o")
		return 1
	}
	kp, err := loadKeyPair(prvPath, genPwd, filePwd)
	if err != nil {
		logger.Error("load private key", "err", err)
		return 1
	}
	msg, err := cliutil.ReadInput(dataPath)
	if err != nil {
		logger.Error("read input", "err", err)
		return 1
	}
	sig, err := ecsvc.Sign(kp.PrvScalar, msg)
	if err != nil {
		logger.Error("sign", "err", err)
		return 1
	}
	if err := cliutil.WriteOutput(outPath, sig.Bytes()); err != nil {
		logger.Error("write signature", "err", err)
		return 1
	}
	return 0
}

func doVerify(logger *slog.Logger, pubPath, dataPath, sigPath string) int {
	if pubPath == "" || sigPath == "" {
		logger.Error("verify requires -pub and -s")
		return 1
	}
	pubRaw, err := cliutil.ReadInput(pubPath)
	if err != nil {
		logger.Error("read public key", "err", err)
		return 1
	}
	pub, err := keyfile.LoadPublicKey(pubRaw)
	if err != nil {
		logger.Error("load public key", "err", err)
		return 1
	}
	sigRaw, err := cliutil.ReadInput(sigPath)
	if err != nil {
		logger.Error("read signature", "err", err)
		return 1
	}
	sig, err := ecsvc.SignatureFromBytes(sigRaw)
	if err != nil {
		logger.Error("parse signature", "err", err)
		return 1
	}
	msg, err := cliutil.ReadInput(dataPath)
	if err != nil {
		logger.Error("read input", "err", err)
		return 1
	}
	ok, err := ecsvc.Verify(sig, pub, msg)
	if err != nil {
		logger.Error("verify", "err", err)
		return 1
	}
	if !ok {
		fmt.Fprintln(os.Stderr, "signature does not verify")
		return 1
	}
	fmt.Println("signature verifies")
	return 0
}

func loadKeyPair(prvPath, genPwd, filePwd string) (ecsvc.KeyPair, error) {
	if filePwd == "" {
		filePwd = genPwd
	}
	record, err := cliutil.ReadInput(prvPath)
	if err != nil {
		return ecsvc.KeyPair{}, err
	}
	return keyfile.LoadPrivateKey([]byte(filePwd), record)
}
