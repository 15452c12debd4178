// bravesearchd is an MCP tool server exposing Brave web/news/images/videos
// search over stdio.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/bravesearch/bravesearchd/internal/bravecli"
	"github.com/bravesearch/bravesearchd/internal/braveconf"
	"github.com/bravesearch/bravesearchd/internal/bravemcp"
	"github.com/bravesearch/bravesearchd/internal/bravepipeline"
)

var version = "dev"

func init() {
	if version != "dev" {
		return
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}
}

func main() {
	versionFlag := flag.Bool("version", false, "Print version and exit")
	statusFlag := flag.Bool("status", false, "Print a one-shot status report and exit")
	probeFlag := flag.Bool("probe", false, "Include connectivity probes in --status")
	inspectFlag := flag.String("inspect", "", "Pretty-print a saved Brave JSON payload and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("bravesearchd %s\n", version)
		return
	}

	logger := braveconf.NewLogger()
	defer logger.Close()

	config, warnings := braveconf.Load()
	for _, warning := range warnings {
		logger.Printf("config: %s: %s", warning.Code, warning.Message)
	}

	if *inspectFlag != "" {
		if err := bravecli.Inspect(*inspectFlag, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	pipeline := bravepipeline.New(config, version)

	if *statusFlag {
		bravecli.PrintStatus(context.Background(), pipeline, *probeFlag, os.Stdout)
		return
	}

	logger.Printf("starting bravesearchd %s (log_filter=%s)", version, config.LogFilter)

	mcpServer := mcpsdk.NewServer(&mcpsdk.Implementation{
		Name:    "brave-web-search",
		Version: version,
	}, &mcpsdk.ServerOptions{
		Instructions: bravemcp.Instructions(),
	})
	bravemcp.New(pipeline).Build(mcpServer)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	session, err := mcpServer.Connect(ctx, &mcpsdk.StdioTransport{}, nil)
	if err != nil {
		logger.Printf("connect: %v", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := session.Wait(); err != nil {
		logger.Printf("session: %v", err)
	}
}
