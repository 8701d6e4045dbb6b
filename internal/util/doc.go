// Copyright (c) 2025 wonderxxxx
// SPDX-License-Identifier: MIT

// Package util provides small shared helpers for super-chizuko.
//
// It contains the atomic file writer used by the config package and
// width-aware string helpers used by the terminal renderers.
package util
