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

package merkle

import (
	"sync"

	"github.com/gmtrust/sm3audit/monitoring"
)

var (
	metricsOnce     sync.Once
	leavesHashed    monitoring.Counter
	treesBuilt      monitoring.Counter
	proofsGenerated monitoring.Counter
	proofsVerified  monitoring.Counter
	buildSeconds    monitoring.Histogram
)

// InitMetrics sets the metric factory for the package. It only has an
// effect the first time metrics are needed; call it before any Build
// or verify if a non-default factory is wanted. A nil factory selects
// the inert one.
func InitMetrics(mf monitoring.MetricFactory) {
	initMetrics(mf)
}

func initMetrics(mf monitoring.MetricFactory) {
	metricsOnce.Do(func() {
		if mf == nil {
			mf = monitoring.InertMetricFactory{}
		}
		leavesHashed = mf.NewCounter("merkle_leaves_hashed", "Number of leaves hashed into trees")
		treesBuilt = mf.NewCounter("merkle_trees_built", "Number of trees built")
		proofsGenerated = mf.NewCounter("merkle_proofs_generated", "Number of inclusion proofs generated")
		proofsVerified = mf.NewCounter("merkle_proofs_verified", "Number of inclusion proofs verified", "outcome")
		buildSeconds = mf.NewHistogram("merkle_build_seconds", "Latency of tree builds")
	})
}
