package domain

import (
	"chat-hub/errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	MaxUsernameLength = 16
	MaxRoomNameLength = 32
)

var validate = validator.New()

type LoginRequest struct {
	Name string `validate:"required,alphanum,max=16"`
}

type JoinRequest struct {
	Room string `validate:"required,alphanum,max=32"`
}

func ValidateUsername(name string) error {
	if err := validate.Struct(LoginRequest{Name: name}); err != nil {
		return fmt.Errorf("%w: %q: %v", errors.ErrInvalidName, name, err)
	}
	return nil
}

func ValidateRoomName(room string) error {
	if err := validate.Struct(JoinRequest{Room: room}); err != nil {
		return fmt.Errorf("%w: %q: %v", errors.ErrInvalidRoomName, room, err)
	}
	return nil
}

// ValidateFilename rejects empty names and names carrying a directory part.
func ValidateFilename(filename string) error {
	if filename == "" || filename == "." || filename == ".." || strings.ContainsAny(filename, `/\`) {
		return fmt.Errorf("%w: %q", errors.ErrInvalidFilename, filename)
	}
	return nil
}
