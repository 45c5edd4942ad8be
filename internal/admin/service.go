package admin

import (
	"context"
	"strings"

	"github.com/angelmondragon/spicy-pepper-shop/internal/store"
	pkgerrors "github.com/angelmondragon/spicy-pepper-shop/pkg/errors"
	"github.com/angelmondragon/spicy-pepper-shop/pkg/logger"
)

const msgCredentialsRequired = "Admin credentials required."

// Credentials are the values offered for an admin-only operation.
type Credentials struct {
	Name     string
	Password string
}

type resetter interface {
	Reset(ctx context.Context) (*store.State, error)
}

// ResetRecorder receives successful resets.
type ResetRecorder interface {
	StoreReset()
}

// Service guards the store reset behind the configured admin credentials.
type Service interface {
	Reset(ctx context.Context, creds Credentials) (*store.State, error)
}

type service struct {
	store    resetter
	admin    Credentials
	logg     *logger.Logger
	recorder ResetRecorder
}

// ServiceParams groups the dependencies of the admin service.
type ServiceParams struct {
	Store    resetter
	Admin    Credentials
	Logger   *logger.Logger
	Recorder ResetRecorder
}

func NewService(params ServiceParams) Service {
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{store: params.Store, admin: params.Admin, logg: logg, recorder: params.Recorder}
}

// Reset replaces the whole store with a fresh seed. The name matches case-insensitively,
// the password exactly; both are trimmed.
func (s *service) Reset(ctx context.Context, creds Credentials) (*store.State, error) {
	name := strings.TrimSpace(creds.Name)
	password := strings.TrimSpace(creds.Password)
	if !strings.EqualFold(name, s.admin.Name) || password != s.admin.Password {
		s.logg.Warn(s.logg.WithField(ctx, "admin_name", name), "store.reset.denied")
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, msgCredentialsRequired)
	}

	state, err := s.store.Reset(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reset store")
	}

	if s.recorder != nil {
		s.recorder.StoreReset()
	}
	s.logg.Info(s.logg.WithField(ctx, "next_id", state.NextID), "store.reset")
	return state, nil
}
