package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/unq-dapp-grupoM/futbol-api/internal/auth"
	"github.com/unq-dapp-grupoM/futbol-api/internal/models"
	apierrors "github.com/unq-dapp-grupoM/futbol-api/pkg/errors"
)

// SubjectResolver re-fetches the persisted identity behind a token subject.
type SubjectResolver interface {
	ResolveSubject(ctx context.Context, subject string) (*models.User, error)
}

// Filter inspects a request and the principal resolved so far and returns
// the updated principal. A returned error is fatal: the chain halts and the
// request is answered with the error immediately.
type Filter func(r *http.Request, p auth.Principal) (auth.Principal, error)

// Authenticator runs the fixed-order authentication pipeline: public-route
// check, API-key filter, JWT filter, then the authorization decision.
type Authenticator struct {
	routes   *auth.Routes
	codec    *auth.Codec
	apiKey   string
	resolver SubjectResolver
	logger   *zap.Logger
	filters  []Filter
}

// NewAuthenticator wires the authentication pipeline. The API-key filter
// always runs before the JWT filter so that a valid key short-circuits
// token processing.
func NewAuthenticator(routes *auth.Routes, codec *auth.Codec, apiKey string, resolver SubjectResolver, logger *zap.Logger) *Authenticator {
	a := &Authenticator{
		routes:   routes,
		codec:    codec,
		apiKey:   apiKey,
		resolver: resolver,
		logger:   logger,
	}
	a.filters = []Filter{a.apiKeyFilter, a.jwtFilter}
	return a
}

// Handle resolves a principal for the request and enforces the route rules.
// Protected routes without acceptable credentials are answered with 403,
// never 401.
func (a *Authenticator) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal := auth.AnonymousPrincipal

		for _, filter := range a.filters {
			var err error
			principal, err = filter(r, principal)
			if err != nil {
				// Malformed bearer tokens abort the request instead of
				// downgrading to anonymous.
				a.logger.Error("Authentication filter failed",
					zap.String("path", r.URL.Path), zap.Error(err))
				WriteError(w, apierrors.Wrap(err, apierrors.ErrInvalidToken))
				return
			}
		}

		if !a.authorized(a.routes.Required(r.URL.Path), principal) {
			a.logger.Warn("Request denied",
				zap.String("path", r.URL.Path),
				zap.String("principal", principal.Kind.String()))
			WriteError(w, apierrors.ErrForbidden)
			return
		}

		ctx := auth.WithPrincipal(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// apiKeyFilter grants the service identity when X-API-KEY matches the
// configured secret. It never rejects; a mismatch only logs a warning and
// leaves the decision to the authorization step.
func (a *Authenticator) apiKeyFilter(r *http.Request, p auth.Principal) (auth.Principal, error) {
	if a.routes.IsPublic(r.URL.Path) {
		return p, nil
	}
	if p.Authenticated() {
		return p, nil
	}

	key := r.Header.Get("X-API-KEY")
	if key != "" && key == a.apiKey {
		return auth.ServicePrincipal, nil
	}

	a.logger.Warn("Invalid or missing API key", zap.String("path", r.URL.Path))
	return p, nil
}

// jwtFilter resolves a user principal from a bearer token. Expired or
// signature-mismatched tokens leave the request anonymous; tokens that do
// not parse at all are fatal.
func (a *Authenticator) jwtFilter(r *http.Request, p auth.Principal) (auth.Principal, error) {
	if p.Authenticated() {
		return p, nil
	}

	header := r.Header.Get("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return p, nil
	}
	raw := strings.TrimPrefix(header, "Bearer ")

	subject, err := a.codec.ExtractSubject(raw)
	if err != nil {
		if errors.Is(err, auth.ErrMalformedToken) {
			return p, err
		}
		return p, nil
	}
	if subject == "" {
		return p, nil
	}

	user, err := a.resolver.ResolveSubject(r.Context(), subject)
	if err != nil {
		a.logger.Error("Failed to resolve token subject", zap.String("subject", subject), zap.Error(err))
		return p, nil
	}
	if user == nil {
		return p, nil
	}

	if a.codec.IsValid(raw, user.Email) {
		return auth.UserPrincipal(user.Email), nil
	}
	return p, nil
}

func (a *Authenticator) authorized(required auth.Access, p auth.Principal) bool {
	switch required {
	case auth.AccessPublic:
		return true
	case auth.AccessService:
		return p.Kind == auth.ServiceKind
	default:
		return p.Authenticated()
	}
}
