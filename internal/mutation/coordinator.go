// Package mutation applies every write the dashboard makes. Each operation validates its
// input before touching the database and runs multi-statement writes in one transaction.
package mutation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"release-desk/internal/apperr"
	"release-desk/internal/dto"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Coordinator struct {
	db *gorm.DB
}

func NewCoordinator(db *gorm.DB) *Coordinator {
	return &Coordinator{db: db}
}

// forUpdate locks the parent row for the rest of the transaction. SQLite ignores the clause.
func forUpdate(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// parsedSplit is a split whose share has already been validated.
type parsedSplit struct {
	name  string
	share float64
}

// parseSplits validates every share up front so no write starts with bad input.
func parseSplits(splits []dto.Split) ([]parsedSplit, error) {
	out := make([]parsedSplit, 0, len(splits))
	for i, s := range splits {
		f, err := s.Share.Float()
		if err != nil {
			return nil, apperr.Validation(fmt.Sprintf("Split %d: %v", i+1, err))
		}
		out = append(out, parsedSplit{name: s.Name, share: f})
	}
	return out, nil
}

// ParseID turns a path parameter into a row id.
func ParseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation(fmt.Sprintf("Invalid id %q", raw))
	}
	return uint(id), nil
}

// txError keeps typed errors raised inside a transaction and wraps everything else.
func txError(msg string, err error) error {
	if err == nil {
		return nil
	}
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	return apperr.Persistence(msg, err)
}

func notFoundOr(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(what + " not found")
	}
	return err
}
