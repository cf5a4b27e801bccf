package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/repoghost/repoghost/config"
	"github.com/repoghost/repoghost/constants/lipgloss"
	"github.com/repoghost/repoghost/providers"
	provider_contracts "github.com/repoghost/repoghost/providers/contracts"
	"github.com/repoghost/repoghost/run_stats"
	stats_contracts "github.com/repoghost/repoghost/run_stats/contracts"
	"github.com/repoghost/repoghost/utils"
)

// rootCmd: repoghost [repo_path]
var rootCmd = &cobra.Command{
	Use:   "repoghost [repo_path]",
	Short: "Summarize a local repo's code in chunked form.",
	Long: `repoghost splits every eligible source file into fixed-size line chunks,
summarizes each chunk through an AI provider, and caches the results keyed by
file content hash. Re-running on an unchanged tree issues zero AI calls: the
cached summaries are reused verbatim. The run produces one combined JSON
snapshot holding the repository map and every chunk summary.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rootDependencies := handleRootCommand(cmd)
		handleSummarizeCommand(rootDependencies, args)
	},
}

// RootDependencies holds the collaborators shared by all subcommands.
type RootDependencies struct {
	Config     *config.Config
	Cwd        string
	Provider   provider_contracts.ISummaryProvider
	RunStats   stats_contracts.IRunStats
	ScanPolicy *utils.ScanPolicy
}

func handleRootCommand(cmd *cobra.Command) *RootDependencies {
	// Load a .env next to the binary before config resolution so API keys in
	// it are visible to viper's env bindings.
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("Error getting current directory: %v", err)))
		os.Exit(1)
	}

	cfg := config.LoadConfigs(cmd, cwd)

	provider, err := providers.SummaryProviderFactory(cfg.AIProviderConfig)
	if err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		os.Exit(1)
	}

	return &RootDependencies{
		Config:     cfg,
		Cwd:        cwd,
		Provider:   provider,
		RunStats:   run_stats.NewRunStats(),
		ScanPolicy: utils.NewScanPolicy(cfg.ExcludedDirs, cfg.ExcludedFiles, cfg.ValidExtensions),
	}
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(lipgloss.Red.Render(fmt.Sprintf("%v", err)))
		os.Exit(1)
	}
}

func init() {
	config.InitFlags(rootCmd)
}
