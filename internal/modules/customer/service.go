package customer

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"homura.shop/app/internal/shared/apperr"
	"homura.shop/app/internal/storefront"
)

type Service struct {
	repo *Repo
	sf   storefront.API
	ttl  time.Duration
	log  *slog.Logger
	now  func() time.Time
}

func NewService(repo *Repo, sf storefront.API, ttl time.Duration, l *slog.Logger) *Service {
	return &Service{repo: repo, sf: sf, ttl: ttl, log: l, now: time.Now}
}

// Login exchanges credentials for a customer access token and stores it in
// a new session.
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	var res storefront.CustomerAccessTokenCreateResult
	err := s.sf.Mutate(ctx, storefront.CustomerAccessTokenCreateMutation, storefront.Vars{
		"input": map[string]string{
			"email":    strings.TrimSpace(email),
			"password": password,
		},
	}, &res)
	if err != nil {
		return Session{}, apperr.Wrap(err)
	}

	payload := res.CustomerAccessTokenCreate
	if len(payload.CustomerUserErrors) > 0 || payload.CustomerAccessToken == nil {
		msg := "Incorrect email or password."
		if len(payload.CustomerUserErrors) > 0 && payload.CustomerUserErrors[0].Code != "UNIDENTIFIED_CUSTOMER" {
			msg = payload.CustomerUserErrors[0].Message
		}
		return Session{}, apperr.UnauthorizedErr(msg)
	}

	now := s.now().UTC()
	sess := Session{
		ID:             uuid.NewString(),
		AccessToken:    payload.CustomerAccessToken.AccessToken,
		TokenExpiresAt: payload.CustomerAccessToken.ExpiresAt.UTC(),
		ExpiresAt:      now.Add(s.ttl),
		CreatedAt:      now,
		UpdatedAt:      now,
		LastSeenAt:     now,
	}
	if sess.TokenExpiresAt.Before(sess.ExpiresAt) {
		sess.ExpiresAt = sess.TokenExpiresAt
	}
	if err := s.repo.Create(ctx, &sess); err != nil {
		return Session{}, apperr.Wrap(err)
	}
	return sess, nil
}

// Logout revokes the access token and drops the session. Revocation errors
// are logged; the local session is removed regardless.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	sess, err := s.repo.Get(ctx, sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return apperr.Wrap(err)
	}

	var res storefront.CustomerAccessTokenDeleteResult
	if err := s.sf.Mutate(ctx, storefront.CustomerAccessTokenDeleteMutation, storefront.Vars{
		"customerAccessToken": sess.AccessToken,
	}, &res); err != nil {
		s.log.LogAttrs(ctx, slog.LevelWarn, "customer_token_revoke_failed", slog.Any("err", err))
	}
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return apperr.Wrap(err)
	}
	return nil
}

// IsLoggedIn reports whether sessionID refers to an active session.
func (s *Service) IsLoggedIn(ctx context.Context, sessionID string) (bool, error) {
	if sessionID == "" {
		return false, nil
	}
	sess, err := s.repo.Get(ctx, sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	now := s.now()
	if !sess.Active(now) {
		return false, nil
	}
	if err := s.repo.Touch(ctx, sessionID, now.UTC()); err != nil {
		s.log.LogAttrs(ctx, slog.LevelWarn, "customer_session_touch_failed", slog.Any("err", err))
	}
	return true, nil
}

// Current loads the customer behind an active session.
func (s *Service) Current(ctx context.Context, sessionID string) (*storefront.Customer, error) {
	if sessionID == "" {
		return nil, apperr.UnauthorizedErr("Please sign in.")
	}
	sess, err := s.repo.Get(ctx, sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return nil, apperr.UnauthorizedErr("Please sign in.")
	}
	if err != nil {
		return nil, apperr.Wrap(err)
	}
	if !sess.Active(s.now()) {
		return nil, apperr.UnauthorizedErr("Your session has expired. Please sign in again.")
	}

	var res storefront.CustomerResult
	if err := s.sf.Query(ctx, storefront.CustomerQuery, storefront.Vars{
		"customerAccessToken": sess.AccessToken,
	}, &res, storefront.NoCache()); err != nil {
		return nil, apperr.Wrap(err)
	}
	if res.Customer == nil {
		return nil, apperr.UnauthorizedErr("Your session has expired. Please sign in again.")
	}
	return res.Customer, nil
}
