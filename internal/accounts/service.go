package accounts

import (
	"context"
	"strings"
	"time"

	"github.com/angelmondragon/spicy-pepper-shop/internal/store"
	pkgerrors "github.com/angelmondragon/spicy-pepper-shop/pkg/errors"
	"github.com/angelmondragon/spicy-pepper-shop/pkg/logger"
	"github.com/angelmondragon/spicy-pepper-shop/pkg/models"
)

const (
	msgLoginRequired  = "Name and password are required."
	msgBadCredentials = "Invalid credentials."
	msgCreateRequired = "Name, email, and password are required."
	msgNotFound       = "Account not found."
)

type stateStore interface {
	View(ctx context.Context, fn func(st *store.State) error) error
	WithTx(ctx context.Context, fn func(tx *store.State) error) error
	Now() time.Time
}

// Service manages shop accounts. Every account it returns is redacted.
type Service interface {
	List(ctx context.Context) ([]models.PublicAccount, error)
	Create(ctx context.Context, input CreateInput) (*models.PublicAccount, error)
	Delete(ctx context.Context, id string) (*models.PublicAccount, error)
	Login(ctx context.Context, input LoginInput) (*models.PublicAccount, error)
}

// CreateInput holds the trimmed fields of a new account.
type CreateInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput holds the submitted credentials.
type LoginInput struct {
	Name     string
	Password string
}

type service struct {
	store stateStore
	logg  *logger.Logger
}

func NewService(st stateStore, logg *logger.Logger) Service {
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{store: st, logg: logg}
}

func (s *service) List(ctx context.Context) ([]models.PublicAccount, error) {
	var out []models.PublicAccount
	err := s.store.View(ctx, func(st *store.State) error {
		out = Redact(st.Accounts)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.PublicAccount, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Password = strings.TrimSpace(input.Password)
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, msgCreateRequired)
	}

	var created models.Account
	err := s.store.WithTx(ctx, func(tx *store.State) error {
		created = models.Account{
			ID:        tx.NewID(),
			Name:      input.Name,
			Email:     input.Email,
			Password:  input.Password,
			CreatedAt: s.store.Now(),
		}
		tx.AddAccount(created)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithAccountID(ctx, created.ID), "account.created")
	public := created.Public()
	return &public, nil
}

func (s *service) Delete(ctx context.Context, id string) (*models.PublicAccount, error) {
	var removed models.Account
	err := s.store.WithTx(ctx, func(tx *store.State) error {
		acct, ok := tx.RemoveAccount(id)
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, msgNotFound)
		}
		removed = acct
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithAccountID(ctx, removed.ID), "account.deleted")
	public := removed.Public()
	return &public, nil
}

func (s *service) Login(ctx context.Context, input LoginInput) (*models.PublicAccount, error) {
	name := strings.TrimSpace(input.Name)
	password := strings.TrimSpace(input.Password)
	if name == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, msgLoginRequired)
	}

	var match *models.Account
	err := s.store.View(ctx, func(st *store.State) error {
		for _, acct := range st.Accounts {
			if strings.EqualFold(acct.Name, name) && acct.Password == password {
				found := acct
				match = &found
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if match == nil {
		s.logg.Warn(s.logg.WithField(ctx, "login_name", name), "login.failed")
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, msgBadCredentials)
	}

	public := match.Public()
	return &public, nil
}

// Redact strips passwords from a list of accounts.
func Redact(accounts []models.Account) []models.PublicAccount {
	out := make([]models.PublicAccount, 0, len(accounts))
	for _, acct := range accounts {
		out = append(out, acct.Public())
	}
	return out
}
