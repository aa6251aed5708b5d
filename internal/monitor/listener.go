package monitor

import (
	"time"

	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog"
	"github.com/thirdweb-dev/chain-monitor/internal/common"
	"github.com/thirdweb-dev/chain-monitor/internal/metrics"
)

type ScanKind string

const (
	ScanKindEvents        ScanKind = "events"
	ScanKindFunctionCalls ScanKind = "calls"
)

type ScanInfo struct {
	Kind     ScanKind
	Address  gethCommon.Address
	Interval common.BlockInterval
}

type ScanSummary struct {
	Entries      int
	Records      int
	DecodeErrors int
	Duration     time.Duration
}

// ScanListener is a set of optional callbacks. The engine invokes listeners in the
// order they were added, from the goroutine running the scan.
type ScanListener struct {
	ScanStarted     func(info ScanInfo)
	RecordCollected func(info ScanInfo, signature string, at common.BlockTimeEntry)
	DecodeFailed    func(info ScanInfo, err *DecodeError)
	ScanFailed      func(info ScanInfo, err error)
	ScanCompleted   func(info ScanInfo, summary ScanSummary)
}

func MetricsListener() ScanListener {
	return ScanListener{
		RecordCollected: func(info ScanInfo, signature string, _ common.BlockTimeEntry) {
			metrics.CollectedRecords.WithLabelValues(string(info.Kind), signature).Inc()
		},
		DecodeFailed: func(info ScanInfo, err *DecodeError) {
			metrics.DecodeErrors.WithLabelValues(string(info.Kind), err.Signature).Inc()
		},
		ScanCompleted: func(info ScanInfo, summary ScanSummary) {
			metrics.ScanDuration.WithLabelValues(string(info.Kind)).Observe(summary.Duration.Seconds())
			metrics.ScannedBlocks.WithLabelValues(string(info.Kind)).Add(float64(info.Interval.Span() + 1))
		},
	}
}

func LoggingListener(logger zerolog.Logger) ScanListener {
	return ScanListener{
		ScanStarted: func(info ScanInfo) {
			logger.Debug().Str("kind", string(info.Kind)).Str("address", info.Address.Hex()).Msgf("Scanning %s", info.Interval)
		},
		DecodeFailed: func(info ScanInfo, err *DecodeError) {
			logger.Warn().Err(err.Cause).Str("entry", err.EntryID).Uint64("block", err.BlockNumber).Str("signature", err.Signature).Msg("Failed to decode entry")
		},
		ScanFailed: func(info ScanInfo, err error) {
			logger.Error().Err(err).Str("kind", string(info.Kind)).Str("address", info.Address.Hex()).Msgf("Scan of %s failed", info.Interval)
		},
		ScanCompleted: func(info ScanInfo, summary ScanSummary) {
			logger.Info().
				Str("kind", string(info.Kind)).
				Str("address", info.Address.Hex()).
				Uint64("from_block", info.Interval.FromBlock).
				Uint64("to_block", info.Interval.ToBlock).
				Int("entries", summary.Entries).
				Int("records", summary.Records).
				Int("decode_errors", summary.DecodeErrors).
				Dur("duration", summary.Duration).
				Msg("Scan completed")
		},
	}
}

type listeners []ScanListener

func (ls listeners) scanStarted(info ScanInfo) {
	for _, l := range ls {
		if l.ScanStarted != nil {
			l.ScanStarted(info)
		}
	}
}

func (ls listeners) recordCollected(info ScanInfo, signature string, at common.BlockTimeEntry) {
	for _, l := range ls {
		if l.RecordCollected != nil {
			l.RecordCollected(info, signature, at)
		}
	}
}

func (ls listeners) decodeFailed(info ScanInfo, err *DecodeError) {
	for _, l := range ls {
		if l.DecodeFailed != nil {
			l.DecodeFailed(info, err)
		}
	}
}

func (ls listeners) scanFailed(info ScanInfo, err error) {
	for _, l := range ls {
		if l.ScanFailed != nil {
			l.ScanFailed(info, err)
		}
	}
}

func (ls listeners) scanCompleted(info ScanInfo, summary ScanSummary) {
	for _, l := range ls {
		if l.ScanCompleted != nil {
			l.ScanCompleted(info, summary)
		}
	}
}
