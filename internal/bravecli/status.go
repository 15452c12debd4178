// Package bravecli renders one-shot terminal output for bravesearchd's
// --status and --inspect flags, styled the way the server's own tool
// responses are structured but meant for a human reading a terminal
// rather than an MCP client.
package bravecli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bravesearch/bravesearchd/internal/bravepipeline"
	"github.com/bravesearch/bravesearchd/internal/bravetypes"
)

var (
	headingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("222")).Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
)

// PrintStatus runs bravepipeline.Service.Status and renders it as a
// human-readable report, optionally probing live connectivity.
func PrintStatus(ctx context.Context, service *bravepipeline.Service, probe bool, w io.Writer) {
	args := bravetypes.StatusArgs{
		ProbeConnectivity: &probe,
		IncludeLimits:     boolPtr(true),
	}
	status := service.Status(ctx, args, func() bool { return ctx.Err() != nil })

	statusStyle := okStyle
	if status.Status != "ok" {
		statusStyle = warnStyle
	}

	fmt.Fprintln(w, headingStyle.Render("bravesearchd status"))
	fmt.Fprintln(w, row("status", statusStyle.Render(status.Status)))
	fmt.Fprintln(w, row("server_version", status.ServerVersion))
	fmt.Fprintln(w, row("provider", status.Provider))

	keySource := "none"
	if status.KeyConfig.Source != nil {
		keySource = *status.KeyConfig.Source
	}
	fmt.Fprintln(w, row("has_key", fmt.Sprintf("%v", status.KeyConfig.HasKey)))
	fmt.Fprintln(w, row("key_source", keySource))

	fmt.Fprintln(w)
	fmt.Fprintln(w, headingStyle.Render("settings"))
	fmt.Fprintln(w, row("cache_ttl_secs", fmt.Sprintf("%d", status.Settings.CacheTTLSecs)))
	fmt.Fprintln(w, row("throttle", fmt.Sprintf("%d/s burst %d", status.Settings.ThrottleRatePerSec, status.Settings.ThrottleBurst)))
	fmt.Fprintln(w, row("retry", fmt.Sprintf("%d attempts, %dms..%dms", status.Settings.RetryCount, status.Settings.RetryBaseDelayMS, status.Settings.RetryMaxDelayMS)))
	fmt.Fprintln(w, row("per_attempt_timeout_ms", fmt.Sprintf("%d", status.Settings.PerAttemptTimeoutMS)))
	if limits := status.Settings.Limits; limits != nil {
		fmt.Fprintln(w, row("max_lines", fmt.Sprintf("%d (%d..%d)", limits.DefaultMaxLines, limits.MinMaxLines, limits.MaxMaxLines)))
		fmt.Fprintln(w, row("max_bytes", fmt.Sprintf("%d (%d..%d)", limits.DefaultMaxBytes, limits.MinMaxBytes, limits.MaxMaxBytes)))
	}

	if status.Probe == nil {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, headingStyle.Render("connectivity probe"))
	for _, endpoint := range status.Probe.Endpoints {
		style := okStyle
		mark := "ok"
		if !endpoint.OK {
			style = warnStyle
			mark = "fail"
			if endpoint.Message != nil {
				mark += ": " + *endpoint.Message
			}
		}
		fmt.Fprintln(w, row(string(endpoint.SearchType), style.Render(fmt.Sprintf("%s (%dms)", mark, endpoint.DurationMS))))
	}
}

func row(label, value string) string {
	return "  " + labelStyle.Render(padLabel(label)) + valueStyle.Render(value)
}

func padLabel(label string) string {
	const width = 24
	if len(label) >= width {
		return label + " "
	}
	return label + strings.Repeat(" ", width-len(label))
}

func boolPtr(v bool) *bool { return &v }
