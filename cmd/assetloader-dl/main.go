package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"assetloader/internal/config"
	"assetloader/internal/fetch"
	"assetloader/internal/loader"
)

func main() {
	// Command line flags
	var (
		baseFlag     = flag.String("base", "", "Content base URL (manifest and units live under it)")
		unitFlag     = flag.String("unit", "", "Download a single unit and its dependency closure instead of everything")
		configFlag   = flag.String("config", "", "Path to config file")
		parallelFlag = flag.Int("parallel", 0, "Max parallel downloads (overrides config)")
		verboseFlag  = flag.Bool("verbose", false, "Show debug output")
		dryRunFlag   = flag.Bool("dry-run", false, "Load the manifest without downloading")
	)

	flag.Parse()

	if *baseFlag == "" && flag.NArg() == 0 {
		fmt.Println("assetloader - download a content manifest and its units")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  assetloader-dl -base <URL> [options]")
		fmt.Println("  assetloader-dl <URL> [options]")
		fmt.Println()
		fmt.Println("For interactive mode, use: assetloader-tui")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Apply flags
	if *parallelFlag > 0 {
		settings.MaxParallelDownloads = *parallelFlag
	}

	base := *baseFlag
	if base == "" {
		base = flag.Arg(0)
	}

	logger := log.New(os.Stderr)
	if *verboseFlag {
		logger.SetLevel(log.DebugLevel)
	}

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nInterrupted, cancelling...")
		cancel()
	}()

	registry := loader.NewRegistry(settings, nil, logger)
	manifestURL, unitURL := fetch.NewBaseResolvers(base, settings.ManifestPath)

	l, err := registry.GetInstance("cli", manifestURL, unitURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	manifest, err := l.LoadManifest(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading manifest: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Manifest: %d unit(s)\n", manifest.UnitCount())

	if *dryRunFlag {
		for _, id := range manifest.AllUnitIDs() {
			fmt.Printf("  %s -> %v\n", id, manifest.DirectDependencies(id))
		}
		fmt.Println("\n[Dry run - not downloading]")
		return
	}

	// Print aggregate progress as it changes
	progressCh, stopProgress := l.OnProgressChanged()
	progressDone := make(chan struct{})
	go func() {
		defer close(progressDone)
		for snap := range progressCh {
			if snap.TotalUnits == 0 {
				continue
			}
			fmt.Printf("\rProgress: %5.1f%% | %d/%d units    ",
				snap.Fraction*100, snap.Completed, snap.TotalUnits)
		}
	}()

	if *unitFlag != "" {
		_, err = l.ResolveClosure(ctx, *unitFlag)
	} else {
		err = l.DownloadAll(ctx)
	}
	stopProgress()
	<-progressDone
	fmt.Println()

	if err != nil {
		if ctx.Err() != nil {
			fmt.Println("Download cancelled.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error during download: %v\n", err)
		os.Exit(1)
	}

	snap := l.Progress()
	fmt.Printf("Complete! Downloaded %d/%d units\n", snap.Completed, snap.TotalUnits)
}
