// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app holds the response texts the server writes into error bodies.
// The client adapter matches some of them, so change both sides together.
package app

// Authentication.
const (
	MsgInvalidLoginPassword    = "invalid login/password"
	MsgLoginAlreadyExists      = "login already exists"
	MsgRegistrationFailed      = "registration failed"
	MsgLoginFailed             = "login failed"
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"
	MsgNoUserIDProvided        = "no user ID provided"
)

// Documents.
const (
	MsgAccessDenied          = "access denied"
	MsgDocumentNotFound      = "document not found"
	MsgDocumentAlreadyExists = "document already exists"
	// MsgInvalidPath is matched by the client to tell a bad path from a
	// rejected write.
	MsgInvalidPath   = "invalid path"
	MsgWriteRejected = "write rejected"
)

const (
	MsgInvalidDataProvided = "invalid data provided"
	MsgInternalServerError = "internal server error"
)
