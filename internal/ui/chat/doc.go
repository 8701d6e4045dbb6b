// Copyright (c) 2025 wonderxxxx
// SPDX-License-Identifier: MIT

// Package chat provides the Bubble Tea application for super-chizuko.
//
// The app has two views: a login form that collects the free-text identity,
// and the chat view (viewport transcript, input line, status bar). The
// Bubble Tea program loop is the single control thread the design calls
// for: every mutation of the transcript and the session happens inside
// Update, and gateway calls run in command goroutines whose results come
// back as messages.
package chat
