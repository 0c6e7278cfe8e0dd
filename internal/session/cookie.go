package session

import "net/http"

const (
	// CookieName is the single cookie carrying the session credential.
	CookieName = "id"

	// maxAge bounds the cookie lifetime on cooperating clients. The
	// credential itself carries no expiry.
	maxAge = 86400 // 24h
)

// SetCookie issues the session cookie to the client.
func SetCookie(w http.ResponseWriter, credential string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    credential,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearCookie tells the client to discard the session cookie. Nothing is
// invalidated server-side; there is nothing stored to invalidate.
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "0",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}
