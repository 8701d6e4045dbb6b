// Copyright (c) 2025 wonderxxxx
// SPDX-License-Identifier: MIT

// Package store provides the durable local store for super-chizuko.
//
// It holds two kinds of data, both keyed like the browser build's
// localStorage so existing deployments stay readable:
//
//   - "userEmail": the last identity used to log in
//   - "chatHistory_<identity>": a JSON array of messages, capped at
//     model.MaxHistory entries, oldest evicted first
//
// The backing store is a single SQLite key/value table at
// ~/.chizuko/chizuko.db. Storage being unavailable is never an error the
// chat path sees: the store degrades silently to in-memory operation and
// the conversation stays fully functional for the life of the process.
package store
