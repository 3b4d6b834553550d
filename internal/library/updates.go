package library

import (
	"fmt"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchRemote Phase = iota
	SyncVideos
	WriteSummary
	BulkRefresh
)

func (p Phase) String() string {
	switch p {
	case FetchRemote:
		return "fetch_remote"
	case SyncVideos:
		return "sync_videos"
	case WriteSummary:
		return "write_summary"
	case BulkRefresh:
		return "bulk_refresh"
	default:
		return ""
	}
}

func fetchRemoteUpdate(ref string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchRemote,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Fetching playlist %s...", ref),
	}
}

func syncVideoUpdate(step, total int, title string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SyncVideos,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s", step, total, title),
	}
}

func videoSkippedUpdate(step, total int, remoteID string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SyncVideos,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, remoteID, err),
	}
}

func writeSummaryUpdate(name string, count, duration int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteSummary,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("%s: %d videos", name, count),
		Data:    duration,
	}
}

func bulkRefreshUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   BulkRefresh,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Refreshing: %s...", step, total, name),
	}
}

func bulkCompletedUpdate(step, total int, name string, synced int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   BulkRefresh,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d videos)", step, total, name, synced),
	}
}

func bulkFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   BulkRefresh,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}
