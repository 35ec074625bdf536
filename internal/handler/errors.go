// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

// ErrNoTransport is returned by NewHandlers when the server config names
// neither an HTTP nor a gRPC address.
var ErrNoTransport = errors.New("neither http nor grpc address is configured")
