// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClassification tells whether a failed statement may be retried.
type ErrorClassification int

const (
	NonRetryable ErrorClassification = iota
	Retryable
)

// PostgresErrorClassifier classifies errors by their SQLSTATE class.
type PostgresErrorClassifier struct{}

func NewPostgresErrorClassifier() *PostgresErrorClassifier {
	return &PostgresErrorClassifier{}
}

// Classify reports Retryable for connection exceptions (class 08),
// transaction rollbacks such as serialization failures and deadlocks
// (class 40) and operator intervention like "cannot connect now" (class 57),
// except for shutdowns that will not recover by themselves.
func (c *PostgresErrorClassifier) Classify(err error) ErrorClassification {
	code := pgErrorCode(err)
	switch {
	case code == "":
		return NonRetryable
	case code == pgerrcode.AdminShutdown, code == pgerrcode.CrashShutdown:
		return NonRetryable
	case pgerrcode.IsConnectionException(code),
		pgerrcode.IsTransactionRollback(code),
		pgerrcode.IsOperatorIntervention(code):
		return Retryable
	}
	return NonRetryable
}

// pgErrorCode returns the SQLSTATE of a driver error, or "" for anything
// that did not come from PostgreSQL.
func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pgErrorCode(err) == pgerrcode.UniqueViolation
}

const (
	maxAttempts  = 3
	retryBackoff = 20 * time.Millisecond
)

// withRetry re-runs fn while the classifier reports a retryable error, with
// a linear backoff. A nil classifier disables retries.
func withRetry(ctx context.Context, classifier ErrorClassificator, fn func() error) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = fn(); err == nil || classifier == nil || classifier.Classify(err) != Retryable {
			return err
		}
		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return err
		case <-time.After(time.Duration(attempt) * retryBackoff):
		}
	}
	return err
}
