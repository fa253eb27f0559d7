package cli

import (
	"bufio"
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/walletkeeper/internal/common"
	"github.com/dmitrijs2005/walletkeeper/internal/server/models"
	"github.com/dmitrijs2005/walletkeeper/internal/server/services"
)

// ErrPasswordMismatch is returned when the confirmation differs.
var ErrPasswordMismatch = errors.New("passwords do not match")

// Signupper creates accounts.
type Signupper interface {
	Signup(ctx context.Context, in services.SignupInput) (*models.Credential, error)
}

// Useradd asks for a username, an email and a password (entered twice on
// the terminal fd) and creates the account through svc.
func Useradd(ctx context.Context, svc Signupper, reader *bufio.Reader, w io.Writer, fd int) (*models.Credential, error) {
	username, err := GetSimpleText(reader, "Enter user name", w)
	if err != nil {
		return nil, err
	}
	email, err := GetSimpleText(reader, "Enter email", w)
	if err != nil {
		return nil, err
	}

	password, err := GetPassword(w, "Enter password", fd)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(password)

	confirm, err := GetPassword(w, "Repeat password", fd)
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(confirm)

	if subtle.ConstantTimeCompare(password, confirm) != 1 {
		return nil, ErrPasswordMismatch
	}

	cred, err := svc.Signup(ctx, services.SignupInput{
		Username: username,
		Email:    email,
		Password: string(password),
	})
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(w, "Created user %s (%s)\n", cred.Username, cred.ID)
	return cred, nil
}
