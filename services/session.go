package services

import (
	"context"
	"net/http"
	"time"

	"quicknotes/model"

	"github.com/gin-gonic/gin"
)

// Authenticator finds or creates the user behind an email.
type Authenticator interface {
	Authenticate(ctx context.Context, email, name string) (*model.User, error)
}

// UserResolver looks up the user a session points at.
type UserResolver interface {
	FindUser(ctx context.Context, userID string) (*model.User, error)
}

type UserService interface {
	Authenticator
	UserResolver
}

// SessionStore keeps the session entirely in a cookie. There is no
// server-side session table, so a cookie stays valid until it expires.
type SessionStore struct {
	CookieName string
	MaxAge     time.Duration
	Secure     bool
	Codec      SessionCodec
	Users      UserService
}

func NewSessionStore(cookieName string, maxAge time.Duration, secure bool, codec SessionCodec, users UserService) *SessionStore {
	if codec == nil {
		codec = PlainCodec{}
	}
	return &SessionStore{
		CookieName: cookieName,
		MaxAge:     maxAge,
		Secure:     secure,
		Codec:      codec,
		Users:      users,
	}
}

// Authenticate resolves the user for email and issues the session cookie.
func (s *SessionStore) Authenticate(c *gin.Context, email, name string) (*model.User, error) {
	user, err := s.Users.Authenticate(c.Request.Context(), email, name)
	if err != nil {
		return nil, err
	}

	value, err := s.Codec.Encode(user.UserID)
	if err != nil {
		return nil, err
	}

	s.setCookie(c, value, int(s.MaxAge.Seconds()))
	return user, nil
}

// SessionUserID returns the decoded id from the cookie without a lookup.
func (s *SessionStore) SessionUserID(c *gin.Context) (string, bool) {
	value, err := c.Cookie(s.CookieName)
	if err != nil || value == "" {
		return "", false
	}
	userID, err := s.Codec.Decode(value)
	if err != nil {
		return "", false
	}
	return userID, true
}

// CurrentUser returns nil when the cookie is absent, undecodable, or no
// longer resolves to a user.
func (s *SessionStore) CurrentUser(c *gin.Context) *model.User {
	userID, ok := s.SessionUserID(c)
	if !ok {
		return nil
	}
	user, err := s.Users.FindUser(c.Request.Context(), userID)
	if err != nil {
		return nil
	}
	return user
}

// EndSession clears the cookie whether or not one was sent.
func (s *SessionStore) EndSession(c *gin.Context) {
	s.setCookie(c, "", -1)
}

func (s *SessionStore) setCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.CookieName, value, maxAge, "/", "", s.Secure, true)
}
