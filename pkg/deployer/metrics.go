// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package deployer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	materializeTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pumpwood_deploy_materialize_total",
			Help: "Total number of materialize runs",
		},
		[]string{"status"}, // success or error
	)

	itemsMaterialized = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pumpwood_deploy_items_materialized_total",
			Help: "Total number of deployment items written to disk",
		},
		[]string{"pool", "kind"},
	)

	produceDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pumpwood_deploy_produce_duration_seconds",
			Help:    "Time taken by individual producers",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5},
		},
		[]string{"producer"},
	)

	commandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pumpwood_deploy_commands_total",
			Help: "Total number of applied commands",
		},
		[]string{"pool", "status"}, // success, failed or error
	)

	commandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pumpwood_deploy_command_duration_seconds",
			Help:    "Time taken by applied scripts, including in-script sleeps",
			Buckets: []float64{0.5, 1, 5, 10, 30, 60, 120},
		},
		[]string{"pool"},
	)

	readinessWait = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pumpwood_deploy_readiness_wait_seconds",
			Help:    "Time spent waiting for applied resources to become ready",
			Buckets: []float64{0.1, 1, 5, 10, 30, 60, 300},
		},
		[]string{"kind"},
	)
)
