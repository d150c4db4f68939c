package domain

import "errors"

// SessionRecord is the durable part of a browser session: the bearer token for
// the core API plus the identity fields cached alongside it. All three fields
// may be absent; an absent token means the visitor is logged out.
type SessionRecord struct {
	Token    string `json:"token,omitempty"`
	Username string `json:"username,omitempty"`
	UserID   string `json:"userId,omitempty"`
}

// IsEmpty reports whether no field of the record is set.
func (r SessionRecord) IsEmpty() bool {
	return r.Token == "" && r.Username == "" && r.UserID == ""
}

// GateState is the resolved posture of the session gate for one navigation.
type GateState string

const (
	// GateUnresolved is the initial state, before the first check completes.
	GateUnresolved GateState = "unresolved"
	// GateBootstrapPending means the core API has no administrator account
	// yet; every route except the setup page must redirect to it.
	GateBootstrapPending GateState = "bootstrap_pending"
	// GateUnauthenticated means the check completed and no valid session exists.
	GateUnauthenticated GateState = "unauthenticated"
	// GateAuthenticated means the check completed with a user attached.
	GateAuthenticated GateState = "authenticated"
)

// Gate is the snapshot route-level logic reads to decide between rendering,
// redirecting and blocking. Disconnected is orthogonal to State: a transport
// failure leaves the stored session untouched and only raises the flag.
type Gate struct {
	State        GateState `json:"state"`
	User         *User     `json:"user"`
	IsAdmin      bool      `json:"isAdmin"`
	Checked      bool      `json:"checked"`
	Disconnected bool      `json:"disconnected"`
	HasToken     bool      `json:"-"`
}

// OutcomeKind tags the result of one who-am-I check against the core API.
type OutcomeKind int

const (
	// OutcomeBootstrapping: the backend reports no administrator exists
	// (HTTP 503, or a 200 whose message flags the locked state).
	OutcomeBootstrapping OutcomeKind = iota
	// OutcomeUnauthenticated: HTTP 401/403; the stored token is stale.
	OutcomeUnauthenticated
	// OutcomeAuthenticated: HTTP 200 with a user body.
	OutcomeAuthenticated
	// OutcomeUnreachable: transport failure or an unexpected status. Not a
	// logout; the stored session must be left as-is.
	OutcomeUnreachable
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeBootstrapping:
		return "bootstrapping"
	case OutcomeUnauthenticated:
		return "unauthenticated"
	case OutcomeAuthenticated:
		return "authenticated"
	default:
		return "unreachable"
	}
}

// Outcome is the tagged result of classifying one who-am-I response.
// User is non-nil only when Kind is OutcomeAuthenticated.
type Outcome struct {
	Kind OutcomeKind
	User *User
}

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrUnreachable     = errors.New("core api unreachable")
	ErrTooManyAttempts = errors.New("too many login attempts")
)
