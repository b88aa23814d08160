package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/terraincognita07/splitday/internal/models"
	"github.com/terraincognita07/splitday/internal/services"
)

type AccountCreator interface {
	Register(name string, email string, password string) (models.User, error)
}

var passwordPrompt = readPasswordNoEcho

// RunCreateUserCommand registers an account with a password typed twice on
// stdin without echo.
func RunCreateUserCommand(accounts AccountCreator, name string, email string, stdin *os.File, out io.Writer) error {
	name, err := requireValue("name", name)
	if err != nil {
		return err
	}
	email, err = requireValue("email", email)
	if err != nil {
		return err
	}

	fmt.Fprint(out, "Password: ")
	password, err := passwordPrompt(stdin)
	fmt.Fprintln(out)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	fmt.Fprint(out, "Repeat password: ")
	confirmation, err := passwordPrompt(stdin)
	fmt.Fprintln(out)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	if string(password) != string(confirmation) {
		return errors.New("passwords do not match")
	}

	user, err := accounts.Register(name, email, string(password))
	switch {
	case errors.Is(err, services.ErrEmailTaken):
		return fmt.Errorf("user %s already exists", services.NormalizeAuthEmail(email))
	case errors.Is(err, services.ErrWeakPassword):
		return fmt.Errorf("password must be at least %d characters", services.MinPasswordLength)
	case errors.Is(err, services.ErrDisplayNameInvalid):
		return fmt.Errorf("name must be %d to %d characters", services.MinDisplayNameLength, services.MaxDisplayNameLength)
	case err != nil:
		return fmt.Errorf("create user: %w", err)
	}

	fmt.Fprintf(out, "Created user %s (%s)\n", user.Email, user.ID)
	return nil
}
