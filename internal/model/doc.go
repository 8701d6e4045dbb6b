// Copyright (c) 2025 wonderxxxx
// SPDX-License-Identifier: MIT

// Package model contains the data structures for chat messages and history.
//
// # Key Types
//
//   - Message: a single exchanged message with role, content and timestamp
//   - Role: message role enumeration (user, assistant, system)
//
// Messages are immutable once created. Assistant content may carry embedded
// expression markup (parenthesized spans); segmentation of that markup is
// the segment package's job and is never persisted.
package model
