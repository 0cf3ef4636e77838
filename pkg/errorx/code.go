package errorx

type Code int

var Unknown = Error{Code: 100000, Message: "Request failed"}

const (
	// Common codes
	BadRequest       Code = 100001
	BadResponse      Code = 100002
	PermissionDenied Code = 100003
	NotFound         Code = 100004
	Unauthenticated  Code = 100005
	AlreadyExists    Code = 100006
	Internal         Code = 100007
	Unavailable      Code = 100008
	NotImplemented   Code = 100009
	TooManyRequests  Code = 100010
	Timeout          Code = 100011
	Canceled         Code = 100012

	// Ledger codes
	InsufficientFunds Code = 200001
	AccountBanned     Code = 200002

	// Ticket and draw codes
	NoTicketsAvailable Code = 300001
	NoEligibleSpin     Code = 300002
	NoPrizesConfigured Code = 300003

	// Claim codes
	InvalidStateTransition Code = 400001

	// Abuse codes
	RateLimited      Code = 500001
	ContentViolation Code = 500002
)
