// Command shopdetect checks a single hostname or URL from the command
// line and prints the verdict. Exit status is 0 when the site looks
// like Shopify, 1 when it does not, 2 on usage errors.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/quantumwebs/shopdetect/shopdetect"
)

func main() {
	jsonOut := flag.Bool("json", false, "print the verdict as JSON")
	timeout := flag.Duration("timeout", 8*time.Second, "per-probe timeout")
	verbose := flag.Bool("v", false, "log probe activity to stderr")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: shopdetect [-json] [-timeout 8s] [-v] <host-or-url>\n")
		os.Exit(2)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	det := shopdetect.New(shopdetect.NewBrowserClient(*timeout))
	det.RequestTimeout = *timeout
	det.Logger = logger

	verdict := det.Detect(context.Background(), flag.Arg(0))

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(verdict); err != nil {
			fmt.Fprintf(os.Stderr, "encode verdict: %v\n", err)
			os.Exit(2)
		}
	} else {
		if verdict.IsShopify {
			fmt.Printf("Shopify: yes (confidence: %s)\n", verdict.Confidence)
		} else {
			fmt.Println("Shopify: no")
		}
		if verdict.ResolvedURL != "" {
			fmt.Printf("resolved: %s\n", verdict.ResolvedURL)
		}
		for _, e := range verdict.Evidence {
			fmt.Printf("  - %s\n", e)
		}
	}

	if !verdict.IsShopify {
		os.Exit(1)
	}
}
