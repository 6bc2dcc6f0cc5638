// The root command for the CLI.
// This root 'composes' your subcommands and provides global config flags like --debug.
package cmd

import (
	compare "github.com/redjax/revview/internal/commands/compareCommand"
	"github.com/redjax/revview/internal/config"
	"github.com/redjax/revview/internal/version"

	"github.com/spf13/cobra"
)

var (
	// A path to a file to load configuration from
	cfgFile string
	// For enabling debug logging with --debug/-D
	debug bool
)

// Cobra root command
var rootCmd = &cobra.Command{
	// The command you run to call the compiled binary
	Use: "revview",
	// A short description of what the command does
	Short: "Compare file revisions from git history.",
	// A longer description for the command
	Long: `Side-by-side comparison of a file's committed revisions: against the
previous revision, the working tree, or any commit picked from its history.`,
	// Adds a help menu you can display with --help/-h
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute the root Cobra command
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

// Initialize the root command
func init() {
	// Add flags to the CLI's root command, making them 'global'
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (JSON, YAML, TOML or .env)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "D", false, "Enable debug logging")

	// Add other CLI subcommands
	rootCmd.AddCommand(compare.NewPreviousCommand())
	rootCmd.AddCommand(compare.NewWorkingCommand())
	rootCmd.AddCommand(compare.NewHistoryCommand())
	rootCmd.AddCommand(compare.NewRecentCommand())
	rootCmd.AddCommand(version.NewSelfCommand())

	// Call the initConfig function when the root command is initialized
	cobra.OnInitialize(initConfig)
}

// Load configuration for CLI app
func initConfig() {
	config.LoadConfig(rootCmd.PersistentFlags(), cfgFile)
}
