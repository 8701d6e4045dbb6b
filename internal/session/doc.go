// Copyright (c) 2025 wonderxxxx
// SPDX-License-Identifier: MIT

// Package session orchestrates the chat message pipeline.
//
// A Session owns one login's worth of state: the identity, the welcome
// bootstrap flag, and the wiring between store, gateway and render sink.
// The flow for one send is:
//
//	user input -> render + persist user message -> pending placeholder
//	           -> gateway request -> segment reply -> resolve placeholder
//	           -> persist raw reply
//
// A failed gateway call substitutes the configured fallback reply, which is
// rendered and persisted exactly like a genuine reply. Nothing in this
// package is fatal; the worst degradation is loss of persistence.
package session
