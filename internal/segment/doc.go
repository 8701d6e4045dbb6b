// Copyright (c) 2025 wonderxxxx
// SPDX-License-Identifier: MIT

// Package segment splits assistant replies into dialogue and expression runs.
//
// Chizuko's replies embed stage directions in parentheses, e.g.
//
//	(smiles) Hi! (waves)
//
// Split turns that into [expression "smiles", dialogue "Hi!",
// expression "waves"], preserving source order. Segments are derived on
// every render and never persisted; history always stores the raw reply.
package segment
