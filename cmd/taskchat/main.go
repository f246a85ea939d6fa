package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

// CLI represents the main CLI structure
type CLI struct {
	Config   string `help:"Path to config file" type:"path"`
	APIKey   string `env:"COHERE_API_KEY" help:"Cohere API key"`
	LogLevel string `default:"info" help:"Log level"`

	Serve   ServeCmd   `cmd:"" default:"1" help:"Start the chat API server (default)"`
	Migrate MigrateCmd `cmd:"" help:"Database migrations"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("taskchat"),
		kong.Description("Task-management chat backend"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	err := ctx.Run(&cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
