package auth

import "context"

// PrincipalKind distinguishes the three identities a request can resolve to.
type PrincipalKind int

const (
	// Anonymous is the zero value: no credentials were accepted.
	Anonymous PrincipalKind = iota
	// ServiceKind is a trusted internal caller identified by the shared API key.
	ServiceKind
	// User is an end user identified by a validated bearer token.
	User
)

func (k PrincipalKind) String() string {
	switch k {
	case ServiceKind:
		return "service"
	case User:
		return "user"
	default:
		return "anonymous"
	}
}

// Principal is the resolved identity of one request. Exactly one Principal
// is associated with a request by the time authorization runs; it is carried
// on the request context and never shared across requests.
type Principal struct {
	Kind    PrincipalKind
	Subject string // user email for Kind == User, empty otherwise
}

// AnonymousPrincipal is the starting identity for every request.
var AnonymousPrincipal = Principal{Kind: Anonymous}

// ServicePrincipal is the identity granted by a matching API key.
var ServicePrincipal = Principal{Kind: ServiceKind, Subject: "api-service"}

// UserPrincipal builds the identity for a validated token subject.
func UserPrincipal(subject string) Principal {
	return Principal{Kind: User, Subject: subject}
}

// Authenticated reports whether the principal carries any accepted identity.
func (p Principal) Authenticated() bool {
	return p.Kind != Anonymous
}

type principalContextKey struct{}

// WithPrincipal returns a context carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFrom returns the principal stored on ctx, or Anonymous.
func PrincipalFrom(ctx context.Context) Principal {
	if p, ok := ctx.Value(principalContextKey{}).(Principal); ok {
		return p
	}
	return AnonymousPrincipal
}
