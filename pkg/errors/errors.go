/*
 * Copyright 2024 The Hostmux Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package errors provides the sentinel error values used across Hostmux
package errors

import "errors"

// ErrInvalidRoute is an error for when a route registration provides an empty route string
var ErrInvalidRoute = errors.New("invalid route")

// ErrDuplicateRoute is an error for when a route registration provides an already-registered route string
var ErrDuplicateRoute = errors.New("duplicate route")

// ErrNilHandler is an error for when a route registration provides a nil handler
var ErrNilHandler = errors.New("nil handler")

// ErrNilListener is an error for a nil listener when a non-nil listener was expected
var ErrNilListener = errors.New("nil listener")

// ErrNoSuchListener is an error for when the named listener is not in the listener group
var ErrNoSuchListener = errors.New("no such listener")

// ErrInvalidResponseCode is an error for when a configured route provides an unservable response code
var ErrInvalidResponseCode = errors.New("invalid response code")

// ErrInvalidMatchType is an error for when a configured route provides an unknown match type
var ErrInvalidMatchType = errors.New("invalid match type")
