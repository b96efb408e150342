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

// Package route defines the route table types used by Router implementations
package route

import "net/http"

// Route is a registered route string and its handler
type Route struct {
	// Pattern is the registered route string, e.g., "/path", "/subtree/" or
	// "example.com/subtree/"
	Pattern string
	// PatternLen caches len(Pattern) for the subtree scan
	PatternLen int
	// HasHost is true when Pattern carries a hostname qualifier
	HasHost bool
	// Handler is invoked for requests matching Pattern
	Handler http.Handler
}

// Routes is an ordered list of Routes. The Router maintains its subtree
// Routes in descending Pattern length order so that a first-hit prefix scan
// yields the longest match.
type Routes []Route

// Lookup is a map of route strings to their Routes, used for exact matching
type Lookup map[string]Route
