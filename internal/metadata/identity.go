package metadata

import (
	"strings"

	"github.com/google/uuid"
)

// NamespacePostIdentity is the UUID namespace for post identities, derived
// from "blogsmith/post-identity/v1" under the standard URL namespace.
var NamespacePostIdentity = uuid.NewSHA1(uuid.NameSpaceURL, []byte("blogsmith/post-identity/v1"))

// PostID returns a deterministic UUID v5 for a slug. Feed readers use it as the
// item guid, so it must survive base URL changes and file moves.
//
// Slugs are compared case-insensitively: "Hello" and "hello" share an identity
// because they would also share a page file on case-insensitive filesystems.
func PostID(slug string) uuid.UUID {
	return uuid.NewSHA1(NamespacePostIdentity, []byte(NormalizeSlug(slug)))
}

// NormalizeSlug returns the canonical form of slug used for identity and
// duplicate detection.
func NormalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}
