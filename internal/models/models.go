package models

import "time"

// Role is the authority granted to an authenticated caller.
type Role string

const (
	RoleUser    Role = "USER"
	RoleService Role = "SERVICE"
)

// User represents a registered account. Emails are stored trimmed and
// lowercased; the password is stored as a bcrypt hash only.
type User struct {
	ID           int64     `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         Role      `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
}

// QueryType classifies an analytics query for the audit log.
type QueryType string

const (
	QueryPlayerInfo  QueryType = "PLAYER_INFO"
	QueryPerformance QueryType = "PERFORMANCE"
	QueryPrediction  QueryType = "PREDICTION"
	QueryComparison  QueryType = "COMPARISON"
)

// QueryHistory is one audit record per successful analytics query.
// Rows are insert-only.
type QueryHistory struct {
	ID         int64     `json:"id" db:"id"`
	UserID     int64     `json:"userId" db:"user_id"`
	PlayerName string    `json:"playerName" db:"player_name"`
	QueryType  QueryType `json:"queryType" db:"query_type"`
	QueryDate  APIDate   `json:"queryDate" db:"query_date"`
}

// APIDate serializes as dd/MM/yyyy, the wire format history consumers expect.
type APIDate time.Time

const apiDateLayout = "02/01/2006"

func (d APIDate) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(d).Format(apiDateLayout) + `"`), nil
}

func (d *APIDate) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}
	t, err := time.Parse(apiDateLayout, s)
	if err != nil {
		return err
	}
	*d = APIDate(t)
	return nil
}

// ParseAPIDate parses a dd/MM/yyyy query parameter.
func ParseAPIDate(s string) (time.Time, error) {
	return time.Parse(apiDateLayout, s)
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthenticationRequest is the body of POST /api/auth/login.
type AuthenticationRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthenticationResponse carries the issued bearer token.
type AuthenticationResponse struct {
	Token string `json:"token"`
}

// MessageResponse is a generic message payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// StatusResponse is returned by the internal status endpoint.
type StatusResponse struct {
	Status     string `json:"status"`
	ScraperURL string `json:"scraperUrl"`
	CacheReady bool   `json:"cacheReady"`
}
