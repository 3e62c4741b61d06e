package domain

import "github.com/google/uuid"

// IdentityKind distinguishes how a caller identity was established.
type IdentityKind int

const (
	// IdentityAuthenticated means an upstream credential supplied the subject.
	IdentityAuthenticated IdentityKind = iota
	// IdentityAnonymous means no credential was presented and the subject was
	// generated at the request boundary.
	IdentityAnonymous
)

// Identity is the caller identity resolved once at the request boundary and
// passed through the pipeline, instead of being reconstructed per component.
type Identity struct {
	Kind    IdentityKind
	Subject string
}

// Anonymous reports whether the identity was generated rather than presented.
func (i Identity) Anonymous() bool { return i.Kind == IdentityAnonymous }

// Anonymous mints an anonymous identity with a generated subject.
func Anonymous() Identity {
	return Identity{Kind: IdentityAnonymous, Subject: "anon-" + uuid.NewString()}
}
