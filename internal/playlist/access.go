package playlist

import (
	"net/http"
)

// accessDecision is the outcome of the PIN gate for one request. There is
// no session: every request re-proves the PIN (or its absence).
type accessDecision int

const (
	accessAllowed accessDecision = iota
	accessPINRequired
	accessPINInvalid
)

// authorize gates a request against a playlist's protection state.
// Public playlists admit everything, even a stray supplied PIN. Private
// playlists distinguish a missing PIN (the caller should prompt) from a
// wrong one (the caller should reject).
func authorize(isPrivate bool, storedPIN *string, suppliedPIN string) accessDecision {
	if !isPrivate {
		return accessAllowed
	}
	if suppliedPIN == "" {
		return accessPINRequired
	}
	if storedPIN == nil || suppliedPIN != *storedPIN {
		return accessPINInvalid
	}
	return accessAllowed
}

// guard writes the 401 for a denied request and reports whether the
// handler may proceed. The stored PIN never appears in the response or
// the logs; "PIN required" carries requiresPin so the frontend can prompt
// instead of failing hard.
func guard(w http.ResponseWriter, pl *Playlist, suppliedPIN string) bool {
	switch authorize(pl.IsPrivate, pl.PIN, suppliedPIN) {
	case accessPINRequired:
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"error":       "PIN required",
			"requiresPin": true,
		})
		return false
	case accessPINInvalid:
		writeError(w, http.StatusUnauthorized, "invalid PIN")
		return false
	}
	return true
}
