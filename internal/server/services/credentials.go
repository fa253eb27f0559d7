// Package services contains server-side business logic. This file implements
// CredentialService: signup, password verification and login.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/dmitrijs2005/walletkeeper/internal/common"
	"github.com/dmitrijs2005/walletkeeper/internal/cryptox"
	"github.com/dmitrijs2005/walletkeeper/internal/dbx"
	"github.com/dmitrijs2005/walletkeeper/internal/logging"
	"github.com/dmitrijs2005/walletkeeper/internal/server/models"
	"github.com/dmitrijs2005/walletkeeper/internal/server/repositories/repomanager"
	"github.com/go-playground/validator/v10"
)

// TokenIssuer mints bearer tokens for authenticated principals.
type TokenIssuer interface {
	IssueDefault(p models.Principal) (string, error)
	DefaultTTL() time.Duration
}

// SignupInput is the data needed to create an account. Usernames may not
// contain '@' so that an identifier can never name one account by email and
// another by username.
type SignupInput struct {
	Username string `json:"username" validate:"required,max=20,excludes=@"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresIn time.Duration
	Principal models.Principal
}

// CredentialService wires the hasher, the credential store and the token
// issuer together. It keeps no per-request state and is safe for concurrent
// use.
type CredentialService struct {
	db        *sql.DB
	repos     repomanager.RepositoryManager
	hasher    *cryptox.Hasher
	issuer    TokenIssuer
	validate  *validator.Validate
	logger    logging.Logger
	dummySalt string
}

// NewCredentialService constructs a CredentialService. db may be nil when
// repos does not need a database (in-memory mode).
func NewCredentialService(db *sql.DB, repos repomanager.RepositoryManager, hasher *cryptox.Hasher, issuer TokenIssuer, logger logging.Logger) *CredentialService {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		return name
	})

	return &CredentialService{
		db:        db,
		repos:     repos,
		hasher:    hasher,
		issuer:    issuer,
		validate:  v,
		logger:    logger.With("module", "credentials"),
		dummySalt: hasher.NewSalt(),
	}
}

// Signup hashes the password with a fresh salt and stores a new credential.
//
// Errors: common.ErrInvalidInput for malformed input, common.ErrAlreadyExists
// when the email is taken, common.ErrStoreUnavailable for store failures.
func (s *CredentialService) Signup(ctx context.Context, in SignupInput) (*models.Credential, error) {
	if err := s.validate.StructCtx(ctx, in); err != nil {
		return nil, invalidInput(err)
	}

	var created *models.Credential
	err := dbx.InTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repos.Credentials(tx)

		_, err := repo.FindByEmailOrUsername(ctx, in.Email)
		if err == nil {
			return common.ErrAlreadyExists
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		digest, err := s.hasher.Hash(in.Password, "")
		if err != nil {
			return err
		}

		created, err = repo.Create(ctx, &models.Credential{
			Username:     in.Username,
			Email:        in.Email,
			PasswordHash: digest.Hash,
			PasswordSalt: digest.Salt,
		})
		return err
	})

	switch {
	case err == nil:
	case errors.Is(err, common.ErrAlreadyExists), errors.Is(err, common.ErrInvalidInput):
		return nil, err
	default:
		return nil, storeError(err)
	}

	s.logger.Info(ctx, "credential created", "user_id", created.ID)
	return created, nil
}

// Verify checks password against the credential found by identifier (email
// or username).
//
// It returns (nil, nil) both for an unknown identifier and for a wrong
// password. A non-nil error means the store could not be read; a cancelled
// or expired ctx is reported the same way, wrapped in
// common.ErrStoreUnavailable.
func (s *CredentialService) Verify(ctx context.Context, identifier, password string) (*models.Principal, error) {
	if err := ctx.Err(); err != nil {
		return nil, storeError(err)
	}

	cred, err := s.repos.Credentials(s.conn()).FindByEmailOrUsername(ctx, identifier)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// same work as a real comparison so response time does not reveal
			// whether the account exists
			s.burn(password)
			return nil, nil
		}
		return nil, storeError(err)
	}

	if err := ctx.Err(); err != nil {
		return nil, storeError(err)
	}

	if password == "" {
		return nil, nil
	}

	ok, err := s.hasher.Verify(password, cred.PasswordSalt, cred.PasswordHash)
	if err != nil {
		s.logger.Error(ctx, "stored credential is unusable", "user_id", cred.ID)
		return nil, common.ErrorInternal
	}
	if !ok {
		return nil, nil
	}

	return cred.Principal(), nil
}

// Login verifies the credentials and issues a bearer token.
//
// Unknown identifiers and wrong passwords both yield common.ErrorUnauthorized.
func (s *CredentialService) Login(ctx context.Context, identifier, password string) (*Session, error) {
	p, err := s.Verify(ctx, identifier, password)
	if err != nil {
		return nil, err
	}
	if p == nil {
		s.logger.Debug(ctx, "login rejected")
		return nil, common.ErrorUnauthorized
	}

	token, err := s.issuer.IssueDefault(*p)
	if err != nil {
		s.logger.Error(ctx, "token issue failed", "user_id", p.UserID, "err", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "login succeeded", "user_id", p.UserID)
	return &Session{Token: token, ExpiresIn: s.issuer.DefaultTTL(), Principal: *p}, nil
}

// --- helpers below ---

func (s *CredentialService) conn() dbx.DBTX {
	if s.db == nil {
		return nil
	}
	return s.db
}

func (s *CredentialService) burn(password string) {
	if password == "" {
		return
	}
	_, _ = s.hasher.Hash(password, s.dummySalt)
}

func storeError(err error) error {
	return fmt.Errorf("%w: %w", common.ErrStoreUnavailable, err)
}

func invalidInput(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field()+" "+fe.Tag())
	}
	return fmt.Errorf("%w: %s", common.ErrInvalidInput, strings.Join(fields, ", "))
}
