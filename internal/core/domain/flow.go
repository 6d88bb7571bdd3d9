package domain

// FlowState represents the progress of one migration login attempt.
type FlowState string

const (
	FlowStart                 FlowState = "start"
	FlowCredentialsSubmitted  FlowState = "credentials_submitted"
	FlowLegacyAuthenticated   FlowState = "legacy_authenticated"
	FlowLocalIdentityResolved FlowState = "local_identity_resolved"
	FlowAttributesMerged      FlowState = "attributes_merged"
	FlowSucceeded             FlowState = "succeeded"
	FlowFailed                FlowState = "failed"
	FlowCancelled             FlowState = "cancelled"
)

// validFlowTransitions defines the allowed state machine transitions.
// Failed is reachable from every state after credentials were submitted;
// Cancelled is only reachable directly from Start.
var validFlowTransitions = map[FlowState][]FlowState{
	FlowStart:                 {FlowCredentialsSubmitted, FlowCancelled},
	FlowCredentialsSubmitted:  {FlowLegacyAuthenticated, FlowFailed},
	FlowLegacyAuthenticated:   {FlowLocalIdentityResolved, FlowFailed},
	FlowLocalIdentityResolved: {FlowAttributesMerged, FlowFailed},
	FlowAttributesMerged:      {FlowSucceeded, FlowFailed},
}

// CanTransitionTo reports whether a transition from the current flow state to
// next is valid.
func (s FlowState) CanTransitionTo(next FlowState) bool {
	for _, allowed := range validFlowTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether the flow state admits no further transitions.
func (s FlowState) Terminal() bool {
	return len(validFlowTransitions[s]) == 0
}
