package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"quicknotes/client"
)

const sessionCookieName = "userId"

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".notesctl-session"
	}
	return filepath.Join(dir, "notesctl", "session")
}

// session bundles a client whose jar is seeded from, and saved back to, sessionFile.
type session struct {
	base   *url.URL
	jar    http.CookieJar
	client *client.Client
	store  *client.Store
}

func openSession() (*session, error) {
	base, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("invalid --server: %w", err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	if raw, err := os.ReadFile(sessionFile); err == nil {
		if value := strings.TrimSpace(string(raw)); value != "" {
			jar.SetCookies(base, []*http.Cookie{{Name: sessionCookieName, Value: value, Path: "/"}})
			slog.Debug("loaded session", "file", sessionFile)
		}
	}

	api := client.New(serverURL, &http.Client{Jar: jar, Timeout: 30 * time.Second})
	return &session{base: base, jar: jar, client: api, store: client.NewStore(api)}, nil
}

// save persists the current cookie value, or removes the file when it is gone.
func (s *session) save() error {
	for _, cookie := range s.jar.Cookies(s.base) {
		if cookie.Name == sessionCookieName && cookie.Value != "" {
			if err := os.MkdirAll(filepath.Dir(sessionFile), 0o700); err != nil {
				return err
			}
			return os.WriteFile(sessionFile, []byte(cookie.Value), 0o600)
		}
	}
	if err := os.Remove(sessionFile); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
