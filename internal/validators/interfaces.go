// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks users, trips, itinerary stops and messages
// before they are written to the document store.
//
// A validator receives the decoded value and, for partial updates, the
// names of the fields being changed. Only those fields are checked, so an
// update that touches "day" does not fail on a missing place ID.
package validators

import "context"

// Validator checks obj. With no fields every rule for the type applies.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}

// ValidatorFunc lets a plain function serve as a Validator.
type ValidatorFunc func(ctx context.Context, obj any, fields ...string) error

func (f ValidatorFunc) Validate(ctx context.Context, obj any, fields ...string) error {
	return f(ctx, obj, fields...)
}
