package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/pterm/pterm"

	"github.com/repoghost/repoghost/constants/lipgloss"
	"github.com/repoghost/repoghost/repo_summarizer"
	"github.com/repoghost/repoghost/utils"
)

const previewLength = 200

// handleSummarizeCommand runs one full summarization pass over the repository.
func handleSummarizeCommand(rootDependencies *RootDependencies, args []string) {
	repoPath := rootDependencies.Cwd
	if len(args) > 0 {
		repoPath = args[0]
	}

	repoPath, err := filepath.Abs(repoPath)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error resolving path: %v", err)))
		os.Exit(1)
	}

	info, err := os.Stat(repoPath)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error: Path does not exist: %s", repoPath)))
		os.Exit(1)
	}
	if !info.IsDir() {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error: Path is not a directory: %s", repoPath)))
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	fmt.Println(lipgloss.BoxStyle.Render(lipgloss.Info.Render("🚀 Repository Summarizer")))

	cfg := rootDependencies.Config

	spinner := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgLightBlue)).WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").WithDelay(100).WithRemoveWhenDone(true)

	spinnerScan, _ := spinner.Start("🔍 Scanning repository...")
	files := rootDependencies.ScanPolicy.ScanRepo(repoPath)
	spinnerScan.Stop()
	fmt.Println(lipgloss.Green.Render(fmt.Sprintf("✨ Found %d source files to analyze!", len(files))))

	store := repo_summarizer.LoadCacheStore(cfg.CacheFile)
	gateway := repo_summarizer.NewSummaryGateway(
		rootDependencies.Provider,
		time.Duration(cfg.AIProviderConfig.RequestTimeoutSeconds)*time.Second,
		rootDependencies.RunStats,
	)

	progress, _ := pterm.DefaultProgressbar.WithTotal(len(files)).WithTitle("📝 Processing files...").Start()

	summarizer := repo_summarizer.NewRepoSummarizer(store, gateway, rootDependencies.RunStats, repo_summarizer.Options{
		ChunkSize:           cfg.ChunkSize,
		ChunkWorkers:        cfg.ChunkWorkers,
		ResummarizeDegraded: cfg.ResummarizeDegraded,
		OnFileStart: func(path string) {
			progress.UpdateTitle(fmt.Sprintf("Processing %s...", filepath.Base(path)))
		},
		OnFileDone: func(path string, cacheHit bool, failed bool) {
			progress.Increment()
		},
	})

	combinedSummaries, failedFiles := summarizer.ProcessFiles(ctx, files)
	_, _ = progress.Stop()

	spinnerMap, _ := spinner.Start("🗺  Generating repository map...")
	repoMap := repo_summarizer.MapRepository(repoPath, cfg.MaxDepth, rootDependencies.ScanPolicy)
	spinnerMap.Stop()

	output := repo_summarizer.Assemble(repoMap, combinedSummaries, cfg.MaxDepth)

	// Persistence failures are the one run-fatal case: the user must know
	// their results did not save.
	if err := repo_summarizer.WriteSnapshot(output, cfg.OutputFile); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		os.Exit(1)
	}
	if err := store.Save(); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error saving cache: %v", err)))
		os.Exit(1)
	}

	for _, path := range failedFiles {
		fmt.Println(lipgloss.Yellow.Render(fmt.Sprintf("⚠️ Skipped unreadable file: %s", path)))
	}

	if len(combinedSummaries) > 0 {
		latestSummary := combinedSummaries[len(combinedSummaries)-1].Summary
		if cfg.CopyToClipboard {
			if err := utils.CopyToClipboard(latestSummary); err == nil {
				fmt.Println(lipgloss.Green.Render("📋 Latest summary has been copied to your clipboard!"))
			}
		}
		preview := latestSummary
		if len(preview) > previewLength {
			preview = preview[:previewLength] + "..."
		}
		fmt.Println(lipgloss.BoxStyle.Render(preview))
	} else {
		fmt.Println(lipgloss.Yellow.Render("⚠️ No summaries generated or found."))
	}

	rootDependencies.RunStats.DisplayRunSummary(cfg.AIProviderConfig.Provider, cfg.AIProviderConfig.Model)
}
