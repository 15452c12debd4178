package bravepipeline

import (
	"context"
	"time"

	"github.com/bravesearch/bravesearchd/internal/bravetypes"
)

// Status answers brave_web_search_status: key presence, runtime settings,
// and (when requested and a key is configured) a live connectivity probe
// against every endpoint.
func (s *Service) Status(ctx context.Context, args bravetypes.StatusArgs, isCancelled func() bool) bravetypes.StatusResponse {
	verbose := args.Verbose != nil && *args.Verbose
	includeLimits := (args.IncludeLimits != nil && *args.IncludeLimits) || verbose
	probeConnectivity := args.ProbeConnectivity != nil && *args.ProbeConnectivity

	keyConfig := s.client.KeyConfig()
	status := "degraded"
	if keyConfig.HasKey() {
		status = "ok"
	}

	var limits *bravetypes.OutputLimitSettings
	if includeLimits {
		limits = &bravetypes.OutputLimitSettings{
			DefaultMaxLines: s.config.OutputLimits.DefaultMaxLines,
			DefaultMaxBytes: s.config.OutputLimits.DefaultMaxBytes,
			MinMaxLines:     s.config.OutputLimits.MinMaxLines,
			MinMaxBytes:     s.config.OutputLimits.MinMaxBytes,
			MaxMaxLines:     s.config.OutputLimits.MaxMaxLines,
			MaxMaxBytes:     s.config.OutputLimits.MaxMaxBytes,
		}
	}

	settings := bravetypes.RuntimeSettingsStatus{
		CacheTTLSecs:        s.config.CacheTTLSecs,
		ThrottleRatePerSec:  s.config.ThrottleRatePerSec,
		ThrottleBurst:       s.config.ThrottleBurst,
		RetryCount:          s.config.RetryCount,
		RetryBaseDelayMS:    s.config.RetryBaseDelayMS,
		RetryMaxDelayMS:     s.config.RetryMaxDelayMS,
		PerAttemptTimeoutMS: s.config.PerAttemptTimeoutMS,
		Limits:              limits,
	}

	var probe *bravetypes.ProbeStatus
	if probeConnectivity && keyConfig.HasKey() {
		var endpoints []bravetypes.EndpointProbeResult

		for _, searchType := range bravetypes.SearchTypes {
			endpoint := s.config.Endpoints.EndpointFor(searchType)
			started := time.Now()
			probeErr := s.client.ProbeEndpoint(ctx, searchType, isCancelled)
			durationMS := time.Since(started).Milliseconds()

			if probeErr == nil {
				endpoints = append(endpoints, bravetypes.EndpointProbeResult{
					SearchType: searchType,
					Endpoint:   endpoint,
					OK:         true,
					DurationMS: durationMS,
				})
				continue
			}
			message := probeErr.Error()
			endpoints = append(endpoints, bravetypes.EndpointProbeResult{
				SearchType: searchType,
				Endpoint:   endpoint,
				OK:         false,
				Message:    &message,
				DurationMS: durationMS,
			})
		}

		degraded := false
		for _, entry := range endpoints {
			if !entry.OK {
				degraded = true
				break
			}
		}
		if degraded {
			status = "degraded"
		}

		probe = &bravetypes.ProbeStatus{
			Query:     "mcp healthcheck",
			Degraded:  degraded,
			Endpoints: endpoints,
		}
	}

	var source *string
	if keyConfig.Source != "" {
		source = &keyConfig.Source
	}

	return bravetypes.StatusResponse{
		APIVersion:    bravetypes.APIVersion,
		Status:        status,
		ServerVersion: s.serverVersion,
		Provider:      bravetypes.ProviderName,
		KeyConfig: bravetypes.KeyConfigStatus{
			HasKey: keyConfig.HasKey(),
			Source: source,
		},
		Settings: settings,
		Probe:    probe,
	}
}
