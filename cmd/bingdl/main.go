// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command bingdl reads saved Bing home pages and prints where each image of
// the day would be downloaded from and saved to.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/yeetrun/bingdl/pkg/cli"
	"github.com/yeetrun/bingdl/pkg/cmdline"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("bingdl: ")

	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("failed to get working directory: %v", err)
	}
	opts, err := cli.ParseOptions(os.Args[1:], wd, cmdline.UsageConfig{
		Name:        "bingdl",
		Description: "Plans the download of the Bing image of the day from saved home pages",
	})
	if errors.Is(err, cli.ErrShown) {
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}

	logf := func(string, ...any) {}
	if opts.Verbose {
		logf = log.Printf
		if err := cmdline.WriteParameters(os.Stderr, &opts, cmdline.TerminalWidth(os.Stderr)); err != nil {
			log.Printf("failed to print parameters: %v", err)
		}
	}

	p := &planner{opts: opts, logf: logf}
	plan, err := p.build()
	if err != nil {
		log.Fatal(err)
	}
	for _, s := range plan.Skipped {
		fmt.Fprintln(os.Stderr, color.YellowString("Warning: skipping %s: %s", s.Page, s.Reason))
	}
	if err := writePlan(os.Stdout, plan, opts.Format); err != nil {
		log.Fatalf("failed to write plan: %v", err)
	}
}
