package domain

import "testing"

func TestFlowState_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to FlowState
		want     bool
	}{
		{FlowStart, FlowCredentialsSubmitted, true},
		{FlowStart, FlowCancelled, true},
		{FlowStart, FlowSucceeded, false},
		{FlowCredentialsSubmitted, FlowLegacyAuthenticated, true},
		{FlowCredentialsSubmitted, FlowFailed, true},
		{FlowCredentialsSubmitted, FlowCancelled, false},
		{FlowLegacyAuthenticated, FlowLocalIdentityResolved, true},
		{FlowLocalIdentityResolved, FlowAttributesMerged, true},
		{FlowAttributesMerged, FlowSucceeded, true},
		{FlowAttributesMerged, FlowLegacyAuthenticated, false},
		{FlowSucceeded, FlowFailed, false},
		{FlowFailed, FlowStart, false},
		{FlowCancelled, FlowCredentialsSubmitted, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestFlowState_Terminal(t *testing.T) {
	for _, s := range []FlowState{FlowSucceeded, FlowFailed, FlowCancelled} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []FlowState{FlowStart, FlowCredentialsSubmitted, FlowLegacyAuthenticated, FlowLocalIdentityResolved, FlowAttributesMerged} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}
