// Command sql92 parses ANSI SQL-92 from a file or stdin and prints each
// statement back in canonical form, or prints the diagnostic to stderr and
// exits non-zero. Run with no arguments on a terminal for an interactive
// syntax-checking shell.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	sql92 "github.com/oarkflow/sql92"
)

const historyFile = ".sql92_history"

func main() {
	checkOnly := flag.Bool("check", false, "validate syntax only; print nothing on success")
	flag.Parse()

	if flag.NArg() == 0 {
		if fi, err := os.Stdin.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
			os.Exit(repl())
		}
		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		os.Exit(run(src, *checkOnly))
	}

	src, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(run(src, *checkOnly))
}

func run(src []byte, checkOnly bool) int {
	res := sql92.Parse(src, sql92.Options{DisableStatementConstruction: checkOnly})
	if res.Code != sql92.OK {
		fmt.Fprintln(os.Stderr, res.Diag.Error())
		return 1
	}
	if !checkOnly {
		for _, stmt := range res.Statements {
			fmt.Println(sql92.Format(stmt) + ";")
		}
	}
	return 0
}

func repl() int {
	fmt.Println("sql92 interactive shell; terminate statements with ; and type :quit to exit")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	var buf strings.Builder
	for {
		prompt := "sql> "
		if buf.Len() > 0 {
			prompt = "  -> "
		}
		line, err := ln.Prompt(prompt)
		if err != nil {
			fmt.Println()
			return 0
		}

		if buf.Len() == 0 && strings.HasPrefix(strings.TrimSpace(line), ":") {
			switch strings.TrimSpace(strings.ToLower(line)) {
			case ":quit", ":q":
				return 0
			default:
				fmt.Println("unknown command; type :quit to exit")
			}
			continue
		}

		if buf.Len() > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(line)

		src := buf.String()
		if !strings.Contains(src, ";") && strings.TrimSpace(src) != "" {
			// keep reading until the statement terminator
			continue
		}
		buf.Reset()
		if strings.TrimSpace(src) == "" {
			continue
		}

		res := sql92.Parse([]byte(src), sql92.Options{})
		if res.Code != sql92.OK {
			fmt.Fprintln(os.Stderr, res.Diag.Error())
			continue
		}
		for _, stmt := range res.Statements {
			fmt.Println(sql92.Format(stmt) + ";")
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))
	}
}
