package services

import (
	"errors"

	"github.com/saeid-a/BindingStudio/internal/repository"
)

var (
	ErrNotFound           = repository.ErrNotFound
	ErrInvalidInput       = errors.New("invalid input")
	ErrStorageUnavailable = errors.New("object storage is not configured")
)
