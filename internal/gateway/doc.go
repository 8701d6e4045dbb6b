// Copyright (c) 2025 wonderxxxx
// SPDX-License-Identifier: MIT

// Package gateway provides the HTTP client for the Chizuko chat backend.
//
// The backend exposes two endpoints this client uses:
//
//	POST /chat    {"email": <identity>, "message": <text>} -> {"response": <string>}
//	GET  /health  -> {"status": "ok"}
//
// Every failure surfaces as a *ClientError. All gateway errors are
// recoverable at the session level: the session substitutes the configured
// fallback reply and carries on.
package gateway
