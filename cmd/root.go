package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dataquerylabs/DataQueryMcp/internal/config"
	"github.com/dataquerylabs/DataQueryMcp/internal/logger"
	"github.com/dataquerylabs/DataQueryMcp/internal/server"
)

const version = "v0.1.0"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "data-query-server",
	Short: "MCP server for SQL queries over bundled sample datasets",
	Long:  `A Model Context Protocol (MCP) server exposing SQL query, schema inspection and table listing tools over an embedded DuckDB database preloaded with sample datasets.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("db-path", "d", "", "Database file path (empty for in-memory; default from config)")
	rootCmd.PersistentFlags().String("data-dir", "", "Directory searched for <dataset>.csv files (default from config)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().String("log-file", "", "Log file path (size-rotated)")

	// Subcommand: stdio (local transport, like IDE integration)
	stdioCmd := &cobra.Command{
		Use:   "stdio",
		Short: "Run over stdio transport (for local MCP clients)",
		RunE:  runStdioServer,
	}
	rootCmd.AddCommand(stdioCmd)

	// Subcommand: http (streamable HTTP transport for remote clients)
	httpCmd := &cobra.Command{
		Use:   "http",
		Short: "Run over streamable HTTP transport (for remote clients)",
		RunE:  runHTTPServer,
	}
	httpCmd.Flags().String("host", "0.0.0.0", "Host to bind to")
	httpCmd.Flags().IntP("port", "p", 8000, "Port to bind to")
	rootCmd.AddCommand(httpCmd)
}

// buildConfig loads the config file (or defaults) and applies flag overrides.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("db-path") {
		cfg.DatabasePath, _ = cmd.Flags().GetString("db-path")
	}
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir, _ = cmd.Flags().GetString("data-dir")
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("log-file") {
		cfg.Logging.OutputFile, _ = cmd.Flags().GetString("log-file")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func initLogging(cfg *config.Config) error {
	return logger.Initialize(logger.ConfigFromLoggingConfig(cfg.Logging))
}

func runStdioServer(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := initLogging(cfg); err != nil {
		return err
	}
	defer logger.Shutdown()

	return server.RunStdioServer(server.Config{
		Version:      version,
		DatabasePath: cfg.DatabasePath,
		DataDir:      cfg.DataDir,
	})
}

func runHTTPServer(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := initLogging(cfg); err != nil {
		return err
	}
	defer logger.Shutdown()

	host, _ := cmd.Flags().GetString("host")
	port, _ := cmd.Flags().GetInt("port")

	return server.RunHTTPServer(server.Config{
		Version:      version,
		DatabasePath: cfg.DatabasePath,
		DataDir:      cfg.DataDir,
	}, host, port)
}
