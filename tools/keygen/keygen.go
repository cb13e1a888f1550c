package main

// keygen.go is a tiny helper utility that generates deterministic, fixed-
// width key datasets for driving pincache outside `go test` (load testing
// or an external harness). It emits one hex-encoded, fixed-width key per line —
// pincache addresses entries by fixed-size byte keys, not the teacher's
// raw uint64 keyspace, so each generated number is encoded into a keySize-
// byte big-endian key before printing.
//
// Usage:
//
//	go run ./tools/keygen -n 1000000 -dist=zipf -seed=42 -keysize=16 -out keys.txt
//
// Flags:
//
//	-n        number of keys to generate (default 1e6)
//	-dist     distribution: "uniform" or "zipf" (default uniform)
//	-zipfs    Zipf s parameter (>1)  (default 1.2)
//	-zipfv    Zipf v parameter (>=1) (default 1.0)
//	-seed     RNG seed (default 1, for reproducibility across runs)
//	-keysize  key width in bytes, at least 8 (default 16)
//	-out      output file (default stdout)
//
// © 2025 pincache authors. MIT License.

import (
	"bufio"
	"encoding/binary"
	"encoding/hex"
	"flag"
	"fmt"
	"math/rand"
	"os"
)

func main() {
	var (
		n       = flag.Int("n", 1_000_000, "number of keys to generate")
		dist    = flag.String("dist", "uniform", "distribution: uniform or zipf")
		zipfS   = flag.Float64("zipfs", 1.2, "zipf s parameter (>1)")
		zipfV   = flag.Float64("zipfv", 1.0, "zipf v parameter (>=1)")
		seedVal = flag.Int64("seed", 1, "PRNG seed")
		keySize = flag.Int("keysize", 16, "key width in bytes")
		outPath = flag.String("out", "", "output file (default stdout)")
	)
	flag.Parse()

	if *keySize < 8 {
		fmt.Fprintln(os.Stderr, "keysize must be >= 8 to hold a uint64")
		os.Exit(1)
	}

	rnd := rand.New(rand.NewSource(*seedVal))

	var gen func() uint64
	switch *dist {
	case "uniform":
		gen = rnd.Uint64
	case "zipf":
		if *zipfS <= 1.0 || *zipfV < 1.0 {
			fmt.Fprintln(os.Stderr, "zipfs must be >1 and zipfv >=1")
			os.Exit(1)
		}
		z := rand.NewZipf(rnd, *zipfS, *zipfV, ^uint64(0))
		gen = z.Uint64
	default:
		fmt.Fprintln(os.Stderr, "unknown dist:", *dist)
		os.Exit(1)
	}

	var out *os.File
	var err error
	if *outPath == "" {
		out = os.Stdout
	} else {
		out, err = os.Create(*outPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "cannot create file:", err)
			os.Exit(1)
		}
		defer out.Close()
	}

	w := bufio.NewWriterSize(out, 1<<20)
	defer w.Flush()

	key := make([]byte, *keySize)
	for i := 0; i < *n; i++ {
		binary.BigEndian.PutUint64(key[len(key)-8:], gen())
		fmt.Fprintln(w, hex.EncodeToString(key))
	}
}
