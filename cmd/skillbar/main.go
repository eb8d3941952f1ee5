// Package main starts the skillbar Discord bot process lifecycle.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	skillbarcmd "github.com/louisbranch/skillbar/internal/cmd/skillbar"
)

func main() {
	cfg, err := skillbarcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[SKILLBAR] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := skillbarcmd.Run(ctx, cfg); err != nil {
		log.Fatalf("skillbar: %v", err)
	}
}
