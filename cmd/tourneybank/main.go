package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hcoles/tourneybank/internal/app"
	"github.com/hcoles/tourneybank/internal/logger"
	"github.com/hcoles/tourneybank/pkg/schedule"
)

// ANSI escape codes
const (
	reset  = "\033[0m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
)

var (
	version = "dev"
)

// printBanner displays the TourneyBank logo
func printBanner() {
	logo := []string{
		` _____                                ___             _    `,
		`|_   _|__  _   _ _ __ _ __   ___ _   _| _ ) __ _ _ __ | | __`,
		`  | |/ _ \| | | | '__| '_ \ / _ \ | | | _ \/ _' | '_ \| |/ /`,
		`  | | (_) | |_| | |  | | | |  __/ |_| |_) | (_| | | | |   < `,
		`  |_|\___/ \__,_|_|  |_| |_|\___|\__, |___/\__,_|_| |_|_|\_\`,
		`                                 |___/                      `,
	}

	fmt.Println()
	for _, line := range logo {
		fmt.Printf("  %s%s%s\n", yellow, line, reset)
	}
	fmt.Printf("  %stournament bank ledger %s%s\n\n", cyan, version, reset)
}

func main() {
	port := flag.Int("port", 8081, "HTTP server port")
	dbPath := flag.String("db", "bank.db", "SQLite database path")
	logLevel := flag.String("loglevel", "info", "Log level (debug, info, warn, error)")
	locked := flag.Bool("locked", false, "Start with the payout schedule locked")
	httpLog := flag.Bool("httplog", false, "Log every HTTP request")
	noBanner := flag.Bool("nobanner", false, "Skip the startup banner")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `TourneyBank - Tournament Bank Ledger & Payout Engine

Usage:
  tourneybank [options]

Options:
  -port int      HTTP server port (default 8081)
  -db string     SQLite database path (default "bank.db")
  -loglevel str  Log level: debug, info, warn, error (default "info")
  -locked        Start with the payout schedule locked
  -httplog       Log every HTTP request
  -nobanner      Skip the startup banner
  -version       Show version and exit
  -help          Show this help message

Examples:
  tourneybank                        # Run on port 8081 with bank.db
  tourneybank -port 8080             # Run on port 8080
  tourneybank -db /data/league.db    # Use custom database path
  tourneybank -locked                # Payouts frozen until unlocked

`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("tourneybank %s\n", version)
		os.Exit(0)
	}

	if !*noBanner {
		printBanner()
	}

	// Create logger with specified level
	appLog := logger.NewWithLevel(logger.ParseLevel(*logLevel))
	if *httpLog {
		appLog.EnableHTTPLogging()
	}

	scheduleClient := &schedule.StaticClient{Locked: *locked}

	a, err := app.New(appLog, *dbPath, scheduleClient)
	if err != nil {
		log.Fatal("Failed to initialize application:", err)
	}
	defer a.Close()

	addr := fmt.Sprintf(":%d", *port)
	if err := a.Run(addr); err != nil {
		log.Fatal(err)
	}
}
