// Copyright 2025 Crew Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// MembershipMutationsTotal counts mutating calls on the membership store
	MembershipMutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "membership_mutations_total",
			Help: "Total number of membership mutations by operation and result",
		},
		[]string{"operation", "result"},
	)

	// InvitationsSentTotal counts invitations created (including resends)
	InvitationsSentTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "invitations_sent_total",
			Help: "Total number of invitation emails dispatched",
		},
	)

	// InvitationsExpiredTotal counts invitations flipped to expired by the sweep
	InvitationsExpiredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "invitations_expired_total",
			Help: "Total number of invitations expired by the background sweep",
		},
	)

	// AvailableSeats records the signed available seat count per team
	AvailableSeats = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "team_available_seats",
			Help: "Available seats per team (may be negative when overbooked)",
		},
		[]string{"team_id"},
	)
)

func init() {
	prometheus.MustRegister(
		MembershipMutationsTotal,
		InvitationsSentTotal,
		InvitationsExpiredTotal,
		AvailableSeats,
	)
}

// RecordMutation 记录一次变更操作的结果
func RecordMutation(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "rejected"
	}
	MembershipMutationsTotal.WithLabelValues(operation, result).Inc()
}
