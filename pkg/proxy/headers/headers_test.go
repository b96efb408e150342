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

package headers

import (
	"net/http"
	"testing"
)

func TestUpdateHeaders(t *testing.T) {
	h := http.Header{
		"Exists":  []string{"value1"},
		"Remove":  []string{"value2"},
		"Append":  []string{"value3"},
		"Replace": []string{"value4"},
	}
	UpdateHeaders(h, map[string]string{
		"":         "empty key is ignored",
		"Set":      "value5",
		"+Append":  "value6",
		"-Remove":  "",
		"Replace":  "value7",
		"-Missing": "",
	})

	if h.Get("Exists") != "value1" {
		t.Error("expected untouched header to remain")
	}
	if h.Get("Set") != "value5" {
		t.Error("expected set header")
	}
	if len(h["Append"]) != 2 || h["Append"][1] != "value6" {
		t.Error("expected appended header value")
	}
	if h.Get("Remove") != "" {
		t.Error("expected removed header")
	}
	if h.Get("Replace") != "value7" {
		t.Error("expected replaced header value")
	}

	// no panics on nil or empty inputs
	UpdateHeaders(nil, map[string]string{"Set": "value"})
	UpdateHeaders(h, nil)
}
