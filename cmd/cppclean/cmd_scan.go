package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/dagangwood163/cppclean/cpp/parser"
)

func newScanCmd() *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "scan <path>",
		Short: "Scan a directory or file for C++ declarations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(args[0], timeout)
		},
	}

	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 10*time.Second, "timeout per file")

	return cmd
}

type scanStats struct {
	declarations int
	errors       []string
}

func runScan(path string, timeout time.Duration) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	var files []string
	var stats scanStats

	if info.IsDir() {
		err := filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				stats.errors = append(stats.errors, fmt.Sprintf("walk %s: %v", p, err))
				return nil
			}
			if !info.IsDir() && isSourceFile(p) {
				files = append(files, p)
			}
			return nil
		})
		if err != nil {
			stats.errors = append(stats.errors, fmt.Sprintf("walk %s: %v", path, err))
		}
		fmt.Printf("Found %d files to scan\n", len(files))
	} else {
		if !isSourceFile(path) {
			return fmt.Errorf("unsupported file type: %s", filepath.Ext(path))
		}
		files = []string{path}
	}

	for i, file := range files {
		if len(files) > 1 {
			fmt.Printf("[%d/%d] ", i+1, len(files))
		}
		scanSingleFile(file, timeout, &stats)
	}

	fmt.Printf("\n=== SCAN COMPLETE ===\n")
	fmt.Printf("Declarations found: %d\n", stats.declarations)
	fmt.Printf("Errors: %d\n", len(stats.errors))
	for _, e := range stats.errors {
		fmt.Printf("  - %s\n", e)
	}
	return nil
}

func scanSingleFile(path string, timeout time.Duration, stats *scanStats) {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("[ERROR] read %s: %v\n", path, err)
		stats.errors = append(stats.errors, fmt.Sprintf("read %s: %v", path, err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	done := make(chan struct{})
	var nodes []parser.Node
	var parseErrs []string

	go func() {
		defer close(done)
		builder := parser.NewAstBuilder(data, path)
		for {
			node, err := builder.Next()
			if err != nil {
				if _, ok := err.(*parser.ParseError); ok {
					parseErrs = append(parseErrs, err.Error())
					continue
				}
				return
			}
			nodes = append(nodes, node)
		}
	}()

	select {
	case <-done:
		fmt.Printf("[OK] %s (%d declarations)\n", path, len(nodes))
		stats.declarations += len(nodes)
		stats.errors = append(stats.errors, parseErrs...)
	case <-ctx.Done():
		fmt.Printf("[TIMEOUT] %s\n", path)
		stats.errors = append(stats.errors, fmt.Sprintf("timeout parsing %s", path))
	}
}

func isSourceFile(path string) bool {
	switch filepath.Ext(path) {
	case ".h", ".hh", ".hpp", ".hxx", ".cc", ".cpp", ".cxx", ".c":
		return true
	}
	return false
}
