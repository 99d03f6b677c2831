package sessionapi

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// TokenHeader carries an import token.
const TokenHeader = "X-Token"

type tokenSet [][]byte

func newTokenSet(tokens []string) tokenSet {
	set := make(tokenSet, 0, len(tokens))
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token != "" {
			set = append(set, []byte(token))
		}
	}
	return set
}

// allows reports whether the request carries one of the configured tokens.
func (s tokenSet) allows(r *http.Request) bool {
	if r == nil {
		return false
	}
	given := []byte(strings.TrimSpace(r.Header.Get(TokenHeader)))
	if len(given) == 0 {
		return false
	}
	ok := false
	for _, token := range s {
		if subtle.ConstantTimeCompare(given, token) == 1 {
			ok = true
		}
	}
	return ok
}
