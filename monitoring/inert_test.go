// Copyright 2026 The sm3audit Authors. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package monitoring

import "testing"

func TestInertCounter(t *testing.T) {
	mf := InertMetricFactory{}
	c := mf.NewCounter("test_counter", "help", "label")

	c.Inc("a")
	c.Add(2.5, "a")
	c.Inc("b")

	if got, want := c.Value("a"), 3.5; got != want {
		t.Errorf("Value(a)=%v, want %v", got, want)
	}
	if got, want := c.Value("b"), 1.0; got != want {
		t.Errorf("Value(b)=%v, want %v", got, want)
	}

	// Wrong label cardinality is logged and dropped, never panics.
	c.Inc("a", "extra")
	if got, want := c.Value("a"), 3.5; got != want {
		t.Errorf("Value(a) after bad Inc=%v, want %v", got, want)
	}
}

func TestInertHistogram(t *testing.T) {
	mf := InertMetricFactory{}
	h := mf.NewHistogram("test_hist", "help")

	h.Observe(1.0)
	h.Observe(2.0)
	h.Observe(4.0)

	count, sum := h.Info()
	if count != 3 || sum != 7.0 {
		t.Errorf("Info()=(%d, %v), want (3, 7)", count, sum)
	}
}
