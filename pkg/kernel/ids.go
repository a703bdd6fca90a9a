package kernel

import "github.com/google/uuid"

// Typed identifiers. They are opaque strings so every store (Postgres, Mongo,
// memory) can hold them without conversion.
type (
	UserID        string
	JobID         string
	ApplicationID string
	RoundID       string
	SessionID     string
	OnboardingID  string
	LetterID      string
)

func NewUserID(id string) UserID               { return UserID(id) }
func NewJobID(id string) JobID                 { return JobID(id) }
func NewApplicationID(id string) ApplicationID { return ApplicationID(id) }
func NewRoundID(id string) RoundID             { return RoundID(id) }
func NewSessionID(id string) SessionID         { return SessionID(id) }
func NewOnboardingID(id string) OnboardingID   { return OnboardingID(id) }
func NewLetterID(id string) LetterID           { return LetterID(id) }

func (id UserID) String() string        { return string(id) }
func (id JobID) String() string         { return string(id) }
func (id ApplicationID) String() string { return string(id) }
func (id RoundID) String() string       { return string(id) }
func (id SessionID) String() string     { return string(id) }
func (id OnboardingID) String() string  { return string(id) }
func (id LetterID) String() string      { return string(id) }

func (id UserID) IsEmpty() bool        { return id == "" }
func (id ApplicationID) IsEmpty() bool { return id == "" }
func (id RoundID) IsEmpty() bool       { return id == "" }
func (id SessionID) IsEmpty() bool     { return id == "" }

// NewID genera un identificador UUIDv4.
func NewID() string {
	return uuid.NewString()
}
