// parsecli parse câu đặt hàng từ tham số dòng lệnh hoặc stdin (mỗi dòng một câu)
// và in kết quả dạng JSON.
//
//	parsecli "oka kg tomatolu" "2 packet milk"
//	cat orders.txt | parsecli -merge
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/order-parser/internal/lexicon"
	"github.com/order-parser/internal/parser"
)

// maxLineBytes giới hạn một dòng stdin của bufio.Scanner
const maxLineBytes = 64 << 20

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("parsecli", flag.ContinueOnError)
	fs.SetOutput(stderr)
	merge := fs.Bool("merge", false, "parse all utterances as one order")
	verbose := fs.Bool("v", false, "debug logging to stderr")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	logger := zap.NewNop()
	if *verbose {
		if l, err := zap.NewDevelopment(); err == nil {
			logger = l
		}
	}
	defer logger.Sync()

	utterances := fs.Args()
	if len(utterances) == 0 {
		lines, err := readLines(stdin)
		if err != nil {
			fmt.Fprintln(stderr, "read stdin:", err)
			return 1
		}
		utterances = lines
	}

	p := parser.NewOrderParser(lexicon.Default(), logger)
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	results := make([]parser.ParseResult, 0, len(utterances))
	if *merge {
		results = append(results, p.ParseMultiple(utterances))
	} else {
		for _, u := range utterances {
			results = append(results, p.Parse(u))
		}
	}
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			fmt.Fprintln(stderr, "encode:", err)
			return 1
		}
	}
	return 0
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}
