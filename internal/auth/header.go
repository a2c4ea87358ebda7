package auth

import "strings"

const bearerPrefix = "Bearer "

// ExtractBearer pulls the token out of an Authorization header value of the form
// "Bearer <token>". The scheme keyword is case-sensitive. Anything else is KindMissing.
func ExtractBearer(header string) (string, error) {
	rest, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok {
		return "", newAuthError(KindMissing, nil)
	}
	token := strings.TrimSpace(rest)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", newAuthError(KindMissing, nil)
	}
	return token, nil
}
