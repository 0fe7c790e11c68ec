// Package cache persists generated recommendation lists keyed by the
// candidate identity and a content hash of the listing set, so the
// pipeline can be skipped when nothing relevant changed.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/spigell/intern-recommender/internal/profile"
)

// Key derives the cache key for one (user, listing set) pair. The
// listing fingerprint covers ids and posted dates, so adding, removing
// or reposting a listing invalidates the key automatically. Listing
// order does not matter.
func Key(userID string, listings []*profile.Listing) string {
	signatures := make([]string, 0, len(listings))
	for _, listing := range listings {
		signatures = append(signatures, listing.ID+"_"+listing.PostedAt.UTC().Format("2006-01-02"))
	}
	sort.Strings(signatures)

	setDigest := sha256.Sum256([]byte(strings.Join(signatures, "_")))
	keyDigest := sha256.Sum256([]byte(userID + "_" + hex.EncodeToString(setDigest[:])))

	return hex.EncodeToString(keyDigest[:])
}
