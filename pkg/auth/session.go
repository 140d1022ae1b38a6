// Package auth resolves the caller's identity from a server-side session and
// enforces role capabilities on routes.
//
// Session keys should be 32 or 64 bytes for HMAC authentication and 16, 24 or
// 32 bytes for AES encryption. Generate production keys with:
//
//	openssl rand -base64 32
package auth

import (
	"context"
	"encoding/base32"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix   = "ammo:session:"
	defaultSessionTTL  = 7 * 24 * time.Hour
	sessionIDByteCount = 32
)

// SessionOptions configures NewSessionStore.
type SessionOptions struct {
	AuthKey       []byte
	EncryptionKey []byte
	// Secure restricts the cookie to HTTPS.
	Secure bool
	// TTL is both the cookie MaxAge and the Redis expiry. Zero means 7 days.
	TTL time.Duration
}

// RedisStore is a sessions.Store that keeps the session in a Redis hash. The
// cookie carries only the signed and encrypted session ID.
//
// Only string values with string keys are persisted; that covers the user ID
// and role written by SaveIdentity. Every successful load extends the expiry,
// so active sessions do not time out.
type RedisStore struct {
	client  redis.Cmdable
	codecs  []securecookie.Codec
	options sessions.Options
	ttl     time.Duration
}

// NewSessionStore returns a RedisStore using client.
func NewSessionStore(client redis.Cmdable, opts SessionOptions) *RedisStore {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	codecs := securecookie.CodecsFromPairs(opts.AuthKey, opts.EncryptionKey)
	for _, c := range codecs {
		if sc, ok := c.(*securecookie.SecureCookie); ok {
			sc.MaxAge(int(ttl.Seconds()))
		}
	}
	return &RedisStore{
		client: client,
		codecs: codecs,
		ttl:    ttl,
		options: sessions.Options{
			Path:     "/",
			MaxAge:   int(ttl.Seconds()),
			HttpOnly: true,
			Secure:   opts.Secure,
			SameSite: http.SameSiteLaxMode,
		},
	}
}

// Get returns the named session, cached per request.
func (s *RedisStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New loads the session named by the request cookie. A missing, tampered or
// expired cookie, or a session gone from Redis, yields a fresh session. Only
// Redis failures are returned as errors.
func (s *RedisStore) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := s.options
	session.Options = &opts
	session.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}
	var id string
	if err := securecookie.DecodeMulti(name, c.Value, &id, s.codecs...); err != nil {
		return session, nil
	}

	found, err := s.load(r.Context(), id, session)
	if err != nil {
		return session, err
	}
	if found {
		session.ID = id
		session.IsNew = false
	}
	return session, nil
}

// Save writes the session to Redis and sets the cookie. A negative MaxAge
// deletes both.
func (s *RedisStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	if session.Options.MaxAge < 0 {
		if session.ID != "" {
			if err := s.client.Del(r.Context(), s.key(session.ID)).Err(); err != nil {
				return fmt.Errorf("delete session: %w", err)
			}
		}
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		session.ID = newSessionID()
	}
	if err := s.save(r.Context(), session); err != nil {
		return err
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, s.codecs...)
	if err != nil {
		return fmt.Errorf("encode session cookie: %w", err)
	}
	http.SetCookie(w, sessions.NewCookie(session.Name(), encoded, session.Options))
	return nil
}

func (s *RedisStore) key(id string) string {
	return sessionKeyPrefix + id
}

// save replaces the stored hash in one MULTI so a reader never sees a hash
// without its expiry.
func (s *RedisStore) save(ctx context.Context, session *sessions.Session) error {
	fields := sessionFields(session.Values)
	key := s.key(session.ID)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		if len(fields) > 0 {
			pipe.HSet(ctx, key, fields)
		}
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

func (s *RedisStore) load(ctx context.Context, id string, session *sessions.Session) (bool, error) {
	key := s.key(id)
	fields, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("load session: %w", err)
	}
	if len(fields) == 0 {
		return false, nil
	}
	for k, v := range fields {
		session.Values[k] = v
	}
	if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
		return true, fmt.Errorf("extend session: %w", err)
	}
	return true, nil
}

// sessionFields keeps the string entries of values.
func sessionFields(values map[any]any) map[string]any {
	fields := make(map[string]any, len(values))
	for k, v := range values {
		ks, ok1 := k.(string)
		vs, ok2 := v.(string)
		if ok1 && ok2 {
			fields[ks] = vs
		}
	}
	return fields
}

func newSessionID() string {
	return strings.TrimRight(base32.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(sessionIDByteCount)), "=")
}

// SaveIdentity stores id in the request's session and writes the cookie.
// Callers must only pass verified identities.
func SaveIdentity(store sessions.Store, w http.ResponseWriter, r *http.Request, id Identity) error {
	session, err := store.Get(r, sessionName)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	session.Values[sessionUserIDKey] = id.UserID.String()
	session.Values[sessionRoleKey] = string(id.Role)
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// ClearIdentity expires the request's session.
func ClearIdentity(store sessions.Store, w http.ResponseWriter, r *http.Request) error {
	session, err := store.Get(r, sessionName)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("expire session: %w", err)
	}
	return nil
}
