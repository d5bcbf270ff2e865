package middleware

import (
	"net/http"
	"net/url"
)

const flashCookieName = "campus_flash"

// SetFlash queues a one-time message to show on the next rendered page.
// A short-lived cookie carries it across the redirect, so it works for
// anonymous visitors too (the login guard fires before a session exists).
// PRE: message is non-empty
// POST: The next PopFlash on this client returns message
func SetFlash(w http.ResponseWriter, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(message),
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   60,
	})
}

// PopFlash returns the pending flash message and clears it.
// POST: Returns "" when no message is pending; a message is returned at most once
func PopFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   SecureCookies,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})
	message, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return message
}
