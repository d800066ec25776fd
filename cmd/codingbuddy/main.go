// Command codingbuddy runs the Coding-Buddy processes.
//
// Usage:
//
//	codingbuddy serve --agent orchestrator
//	codingbuddy serve --agent stackredhub --addr :8001
//	codingbuddy tools
//	codingbuddy chat --url http://localhost:8002
package main

import (
	"fmt"
	"runtime/debug"

	"github.com/alecthomas/kong"
)

// CLI defines the command-line interface.
type CLI struct {
	Version VersionCmd `cmd:"" help:"Show version information."`
	Serve   ServeCmd   `cmd:"" help:"Start one agent process."`
	Tools   ToolsCmd   `cmd:"" help:"Start the MCP tool server."`
	Chat    ChatCmd    `cmd:"" help:"Chat with an agent from the terminal."`

	LogLevel string `help:"Log level (debug, info, warn, error)." default:"info"`
}

// VersionCmd shows version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	version := "dev"
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "(devel)" && info.Main.Version != "" {
			version = info.Main.Version
		}
	}
	fmt.Printf("codingbuddy version %s\n", version)
	return nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("codingbuddy"),
		kong.Description("Multi-agent assistant that researches and fixes coding errors."),
		kong.UsageOnError(),
	)

	if err := setupLogger(cli.LogLevel); err != nil {
		ctx.FatalIfErrorf(err)
	}

	ctx.FatalIfErrorf(ctx.Run(&cli))
}
