package service

import (
	"database/sql"
	"errors"

	appErrors "github.com/noah-isme/school-exams-api/pkg/errors"
)

func mapStudentLookup(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
}
