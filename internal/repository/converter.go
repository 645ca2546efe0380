package repository

import (
	"errors"
	"fmt"
	"net"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nilecare/advisory-backend/internal/entity"
)

func scanSummary(row pgx.CollectableRow) (entity.DocumentSummary, error) {
	var (
		s      entity.DocumentSummary
		status string
	)
	if err := row.Scan(&s.ID, &s.Filename, &s.UploadDate, &status, &s.Size); err != nil {
		return s, err
	}
	s.Status = entity.DocumentStatus(status)

	return s, nil
}

func scanDocument(row pgx.CollectableRow) (entity.Document, error) {
	var (
		d      entity.Document
		status string
	)
	err := row.Scan(&d.ID, &d.UploadID, &d.SrcFileName, &d.ChunkIndex, &d.Content, &status, &d.Size, &d.CreatedAt)
	if err != nil {
		return d, err
	}
	d.Status = entity.DocumentStatus(status)

	return d, nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.HashedPassword, &u.Disabled, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// wrapStoreError tags connection-class failures with entity.ErrStoreConnection
func wrapStoreError(op string, err error) error {
	if isConnectionError(err) {
		return fmt.Errorf("%s: %w: %w", op, entity.ErrStoreConnection, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isConnectionError(err error) bool {
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	return pgconn.SafeToRetry(err)
}
