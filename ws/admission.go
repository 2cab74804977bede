package ws

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"unicode"
)

const maxUserIDLength = 128

// TokenVerifier maps a bearer token to the user id of the session it still
// belongs to. Expired, logged-out and replaced tokens must fail.
type TokenVerifier interface {
	VerifySession(ctx context.Context, token string) (string, error)
}

// Admission gates a websocket upgrade request before its channel is
// registered. Without a verifier the user id is taken verbatim from the
// "id" query parameter; with one, a "token" parameter must also be present
// and verify to the same id.
type Admission struct {
	verifier TokenVerifier
}

func NewAdmission(verifier TokenVerifier) *Admission {
	return &Admission{verifier: verifier}
}

// Admit returns the user id the connection is for, or an error wrapping
// ErrAdmission.
func (a *Admission) Admit(ctx context.Context, query url.Values) (string, error) {
	userID, err := UserIDFromQuery(query)
	if err != nil {
		return "", err
	}
	if a == nil || a.verifier == nil {
		return userID, nil
	}

	token := query.Get("token")
	if token == "" {
		return "", fmt.Errorf("%w: missing token", ErrAdmission)
	}
	verified, err := a.verifier.VerifySession(ctx, token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAdmission, err)
	}
	if verified != userID {
		return "", fmt.Errorf("%w: token does not belong to %q", ErrAdmission, userID)
	}
	return userID, nil
}

// UserIDFromQuery extracts and checks the "id" query parameter.
func UserIDFromQuery(query url.Values) (string, error) {
	values, ok := query["id"]
	if !ok || len(values) == 0 {
		return "", fmt.Errorf("%w: missing id", ErrAdmission)
	}
	if len(values) > 1 {
		return "", fmt.Errorf("%w: id given %d times", ErrAdmission, len(values))
	}

	id := values[0]
	if strings.TrimSpace(id) == "" {
		return "", fmt.Errorf("%w: empty id", ErrAdmission)
	}
	if len(id) > maxUserIDLength {
		return "", fmt.Errorf("%w: id longer than %d bytes", ErrAdmission, maxUserIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return "", fmt.Errorf("%w: id contains whitespace or control characters", ErrAdmission)
		}
	}
	return id, nil
}
