package poller

// PollerError is a custom error type for poller configuration errors
type PollerError string

// Error implements the error interface
func (e PollerError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilConfig        PollerError = "config cannot be nil"
	ErrNoAccounts       PollerError = "at least one account is required"
	ErrNilRiotClient    PollerError = "riot client cannot be nil"
	ErrNilRepository    PollerError = "account state repository cannot be nil"
	ErrNilMessaging     PollerError = "messaging service cannot be nil"
	ErrNilSummary       PollerError = "summary service cannot be nil"
	ErrNilNotifier      PollerError = "notifier cannot be nil"
	ErrNoChannel        PollerError = "ranked channel ID cannot be empty"
	ErrInvalidScope     PollerError = "unknown match scope"
	ErrNoCycleCompleted PollerError = "no poll cycle completed yet"
	ErrStale            PollerError = "last poll cycle is stale"
)
