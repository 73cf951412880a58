package entities

import (
	"time"
)

// DailyClaimResult is the transient outcome of a daily claim operation.
// Not persisted; the command layer renders it and throws it away.
type DailyClaimResult struct {
	Success     bool
	Balance     *BytesBalance
	Earned      int64
	Streak      int
	Multiplier  int
	NextClaimAt time.Time
}

// TransferResult is the transient outcome of a transfer operation.
// Soft failures (self-transfer, bad amount, backend-rejected) are reported
// with Success=false and a user-facing Reason; callers branch on Success
// rather than catching an error.
type TransferResult struct {
	Success     bool
	Reason      string
	Transaction *BytesTransaction

	// NewGiverBalance is computed locally from the pre-transfer balance and
	// may drift from the backend under concurrent transfers; the backend
	// remains authoritative. NewReceiverBalance is fetched best-effort and
	// is nil when that fetch failed.
	NewGiverBalance    int64
	NewReceiverBalance *int64
}

// FailedTransfer builds a soft-failure result with a user-facing reason.
func FailedTransfer(reason string) *TransferResult {
	return &TransferResult{Success: false, Reason: reason}
}
