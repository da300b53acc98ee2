// Command fsecli compresses and decompresses files into a small
// self-describing archive of fse blocks, each checksummed over its original
// bytes, so a block whose decoded output does not match is rejected before
// it is written out.
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/neal-burns/FiniteStateEntropy/fse"
	"github.com/neal-burns/FiniteStateEntropy/internal/checksum"
)

func fatalf(f string, args ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", args...)
	os.Exit(1)
}

const (
	archiveMagic   = "FSE1"
	defaultBlockSz = 128 * 1024
)

// member layout: [origLen varint][checksum 8 LE][blockLen varint][block...]

func writeVarint(w io.Writer, v uint64) error {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], v)
	_, err := w.Write(buf[:n])
	return err
}

func compressFile(path, dstPath string, blockSize int) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	out, err := os.Create(dstPath)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.WriteString(archiveMagic); err != nil {
		return err
	}

	for len(src) > 0 {
		n := blockSize
		if n > len(src) {
			n = len(src)
		}
		block := src[:n]
		src = src[n:]

		comp, err := fse.Compress(block)
		if err != nil {
			return fmt.Errorf("compressing block: %w", err)
		}
		sum := checksum.Block(block)

		if err := writeVarint(out, uint64(len(block))); err != nil {
			return err
		}
		var sumBuf [8]byte
		binary.LittleEndian.PutUint64(sumBuf[:], sum)
		if _, err := out.Write(sumBuf[:]); err != nil {
			return err
		}
		if err := writeVarint(out, uint64(len(comp))); err != nil {
			return err
		}
		if _, err := out.Write(comp); err != nil {
			return err
		}
	}
	return nil
}

func decompressFile(path, dstPath string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if len(data) < len(archiveMagic) || string(data[:len(archiveMagic)]) != archiveMagic {
		return fmt.Errorf("%s: not an fse archive", path)
	}
	data = data[len(archiveMagic):]

	out, err := os.Create(dstPath)
	if err != nil {
		return err
	}
	defer out.Close()

	for len(data) > 0 {
		origLen, n := binary.Uvarint(data)
		if n <= 0 {
			return fmt.Errorf("corrupt archive: bad origLen varint")
		}
		data = data[n:]
		if len(data) < 8 {
			return fmt.Errorf("corrupt archive: truncated checksum")
		}
		sum := binary.LittleEndian.Uint64(data)
		data = data[8:]

		blockLen, n := binary.Uvarint(data)
		if n <= 0 {
			return fmt.Errorf("corrupt archive: bad blockLen varint")
		}
		data = data[n:]
		if uint64(len(data)) < blockLen {
			return fmt.Errorf("corrupt archive: truncated block")
		}
		block := data[:blockLen]
		data = data[blockLen:]

		plain, err := fse.Decompress(block, int(origLen))
		if err != nil {
			return fmt.Errorf("decompressing block: %w", err)
		}
		if !checksum.Verify(plain, sum) {
			return fmt.Errorf("checksum mismatch: archive is corrupt")
		}
		if _, err := out.Write(plain); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	var (
		decompress bool
		output     string
		blockSize  int
	)
	flag.BoolVar(&decompress, "d", false, "decompress instead of compress")
	flag.StringVar(&output, "o", "", "output path (default: input path with .fse appended when compressing, .out appended when decompressing)")
	flag.IntVar(&blockSize, "b", defaultBlockSz, "block size in bytes when compressing")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fatalf("usage: %s [-d] [-o out] [-b blocksize] <file>", os.Args[0])
	}
	in := args[0]

	if decompress {
		out := output
		if out == "" {
			out = in + ".out"
		}
		if err := decompressFile(in, out); err != nil {
			fatalf("%s", err)
		}
		return
	}

	out := output
	if out == "" {
		out = in + ".fse"
	}
	if err := compressFile(in, out, blockSize); err != nil {
		fatalf("%s", err)
	}
}
