package application

import (
	"errors"

	"github.com/oksasatya/go-videotube/internal/domain/repository"
	"github.com/oksasatya/go-videotube/pkg/apperror"
)

// fromStore converts a repository error into the error taxonomy.
func fromStore(err error, notFound string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return apperror.NotFound(notFound)
	case errors.Is(err, repository.ErrDuplicate):
		return apperror.Conflict("resource already exists")
	default:
		if _, ok := apperror.As(err); ok {
			return err
		}
		return apperror.Internal("storage failure", err)
	}
}
