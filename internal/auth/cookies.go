package auth

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/interinest/marketplace/internal/domain"
)

// Session cookie names.
const (
	CookieToken = "authToken"
	CookieRole  = "role"
	CookieUID   = "uid"
)

// SessionCookies builds the three session cookies. secure must be true only
// when the request was served over TLS.
func SessionCookies(sess *domain.Session, maxAge time.Duration, secure bool) []*fiber.Cookie {
	seconds := int(maxAge / time.Second)
	build := func(name, value string, httpOnly bool) *fiber.Cookie {
		return &fiber.Cookie{
			Name:     name,
			Value:    value,
			Path:     "/",
			MaxAge:   seconds,
			Secure:   secure,
			HTTPOnly: httpOnly,
			SameSite: fiber.CookieSameSiteLaxMode,
		}
	}
	return []*fiber.Cookie{
		build(CookieToken, sess.Token, true),
		build(CookieRole, string(sess.Role), false),
		build(CookieUID, sess.SubjectID, false),
	}
}

// ExpiredSessionCookies builds cookies that make the browser drop the session.
func ExpiredSessionCookies(secure bool) []*fiber.Cookie {
	epoch := time.Unix(0, 0).UTC()
	cookies := make([]*fiber.Cookie, 0, 3)
	for _, name := range []string{CookieToken, CookieRole, CookieUID} {
		cookies = append(cookies, &fiber.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			Expires:  epoch,
			Secure:   secure,
			HTTPOnly: name == CookieToken,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	return cookies
}

// WriteSession sets the session cookies on the response. Nothing is written
// for an invalid session.
func WriteSession(c *fiber.Ctx, sess *domain.Session, maxAge time.Duration) {
	if !sess.Valid() {
		return
	}
	for _, cookie := range SessionCookies(sess, maxAge, c.Secure()) {
		c.Cookie(cookie)
	}
}

// ClearSession expires the session cookies.
func ClearSession(c *fiber.Ctx) {
	for _, cookie := range ExpiredSessionCookies(c.Secure()) {
		c.Cookie(cookie)
	}
}

// SessionFromCookies reads the raw session attributes. It returns nil unless
// all three cookies are present; no verification happens here.
func SessionFromCookies(c *fiber.Ctx) *domain.Session {
	sess := &domain.Session{
		Token:     c.Cookies(CookieToken),
		Role:      domain.Role(c.Cookies(CookieRole)),
		SubjectID: c.Cookies(CookieUID),
	}
	if !sess.Valid() {
		return nil
	}
	return sess
}
