// huff compresses and decompresses files with Huffman coding.
//
//	huff compress   [-o out] [-alphabet text|bytes] [-remote] FILE
//	huff decompress [-o out] [-alphabet text|bytes] [-remote] FILE
//	huff runs
//
// Flags may come before or after FILE. Without -o the output goes to
// compressed.bin / decompressed.txt next to FILE. With -remote the work is done by the server at $HUFF_SERVER.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/YashDixit26/File-Compression-and-Decompression-System/internal/config"
	"github.com/YashDixit26/File-Compression-and-Decompression-System/internal/model"
	"github.com/YashDixit26/File-Compression-and-Decompression-System/internal/notify"
	"github.com/YashDixit26/File-Compression-and-Decompression-System/internal/repo"
	"github.com/YashDixit26/File-Compression-and-Decompression-System/internal/service"
	"github.com/YashDixit26/File-Compression-and-Decompression-System/pkg/huffclient"
	"github.com/YashDixit26/File-Compression-and-Decompression-System/pkg/huffman"
	"github.com/YashDixit26/File-Compression-and-Decompression-System/pkg/logger"
)

const usage = "Usage: huff [compress|decompress] [-o outfile] [-alphabet text|bytes] [-remote] infile\n       huff runs"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, usage)
		return 2
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	cmd, args := args[0], args[1:]
	switch cmd {
	case "runs":
		return listRuns(huffclient.New(cfg.ServerURL), stdout, stderr)
	case model.OpCompress, model.OpDecompress:
	default:
		fmt.Fprintln(stderr, usage)
		return 2
	}

	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(stderr)
	out := fs.String("o", "", "output file")
	alphabet := fs.String("alphabet", cfg.Alphabet.String(), "symbol alphabet: text or bytes")
	remote := fs.Bool("remote", false, "run on the server at $HUFF_SERVER")
	files, err := parseInterleaved(fs, args)
	if err != nil {
		return 2
	}
	if len(files) != 1 {
		fmt.Fprintln(stderr, usage)
		return 2
	}
	in := files[0]
	a, err := huffman.ParseAlphabet(*alphabet)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	var r *model.Run
	if *remote {
		c := huffclient.New(cfg.ServerURL)
		req := huffclient.FileRequest{Path: in, Output: *out, Alphabet: a.String()}
		if cmd == model.OpCompress {
			r, err = c.Compress(req)
		} else {
			r, err = c.Decompress(req)
		}
	} else {
		svc := service.NewCodecService(repo.NewRunRepoInMemory(), notify.Nop(), logger.Nop(), a)
		r, err = runLocal(svc, cmd, in, *out, a)
	}

	if err != nil {
		var apiErr *huffclient.APIError
		if errors.Is(err, huffman.ErrEmptyInput) || (errors.As(err, &apiErr) && apiErr.Message == huffman.ErrEmptyInput.Error()) {
			fmt.Fprintln(stdout, "The input file is empty. No compression needed.")
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	printSummary(stdout, r)
	return 0
}

// parseInterleaved parses fs over args and returns the positional arguments,
// allowing flags both before and after them. Everything after "--" is
// positional.
func parseInterleaved(fs *flag.FlagSet, args []string) ([]string, error) {
	var pos []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return pos, nil
		}
		if len(args) > len(rest) && args[len(args)-len(rest)-1] == "--" {
			return append(pos, rest...), nil
		}
		pos = append(pos, rest[0])
		args = rest[1:]
	}
}

func runLocal(svc *service.CodecService, cmd, in, out string, a huffman.Alphabet) (*model.Run, error) {
	ctx := context.Background()
	switch {
	case cmd == model.OpCompress && out == "":
		return svc.Compress(ctx, in)
	case cmd == model.OpCompress:
		return svc.CompressTo(ctx, in, out, a)
	case out == "":
		return svc.Decompress(ctx, in)
	}
	return svc.DecompressTo(ctx, in, out, a)
}

func printSummary(w io.Writer, r *model.Run) {
	mins, secs, ms := r.ElapsedParts()
	if r.Op == model.OpCompress {
		fmt.Fprintf(w, "Original File Size: %d bytes\n", r.InputSize)
		fmt.Fprintf(w, "Compressed File Size: %d bytes\n", r.OutputSize)
		fmt.Fprintf(w, "Compression Ratio: %.2f%%\n", r.Ratio())
		fmt.Fprintf(w, "Time Taken to Compress: %d min %d sec %d ms\n", mins, secs, ms)
	} else {
		fmt.Fprintf(w, "Compressed File Size: %d bytes\n", r.InputSize)
		fmt.Fprintf(w, "Decompressed File Size: %d bytes\n", r.OutputSize)
		fmt.Fprintf(w, "Time Taken to Decompress: %d min %d sec %d ms\n", mins, secs, ms)
	}
	fmt.Fprintf(w, "Output: %s\n", r.OutputPath)
}

func listRuns(c *huffclient.Client, stdout, stderr io.Writer) int {
	runs, err := c.Runs()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	for _, r := range runs {
		fmt.Fprintf(stdout, "%s  %-10s  %8d -> %8d bytes  %s  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04:05"), r.Op, r.InputSize, r.OutputSize, r.Elapsed, r.InputPath)
	}
	return 0
}
