// Package main imports a skills.json dump into the skillbar skill store.
package main

import (
	"context"
	"flag"
	"os"

	entrypoint "github.com/louisbranch/skillbar/internal/platform/cmd"
	"github.com/louisbranch/skillbar/internal/platform/config"
	skillsimporter "github.com/louisbranch/skillbar/internal/tools/importer/skills"
)

func main() {
	cfg, err := skillsimporter.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	err = entrypoint.RunWithTelemetry(context.Background(), entrypoint.ServiceCatalogImporter, func(ctx context.Context) error {
		return skillsimporter.Run(ctx, cfg, os.Stdout)
	})
	if err != nil {
		config.Exitf("Error: %v", err)
	}
}
