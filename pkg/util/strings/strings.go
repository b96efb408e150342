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

// Package strings provides extended functionality for string types
package strings

// Lookup is a map of strings used for unordered membership checks
type Lookup map[string]interface{}

// NewLookup returns a Lookup populated with the provided keys
func NewLookup(keys []string) Lookup {
	l := make(Lookup, len(keys))
	for _, k := range keys {
		l[k] = nil
	}
	return l
}
