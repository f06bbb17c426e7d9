package models

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name      string
		current   OrderStatus
		requested OrderStatus
		want      bool
	}{
		{"draftToPlaced", StatusDraft, StatusPlaced, true},
		{"draftToCancelled", StatusDraft, StatusCancelled, true},
		{"draftSkipsToAccepted", StatusDraft, StatusAccepted, false},
		{"placedToAccepted", StatusPlaced, StatusAccepted, true},
		{"placedToCancelled", StatusPlaced, StatusCancelled, true},
		{"placedSkipsToReady", StatusPlaced, StatusReady, false},
		{"placedSkipsToServed", StatusPlaced, StatusServed, false},
		{"acceptedToPreparing", StatusAccepted, StatusPreparing, true},
		{"acceptedToCancelled", StatusAccepted, StatusCancelled, true},
		{"acceptedBackToPlaced", StatusAccepted, StatusPlaced, false},
		{"preparingToReady", StatusPreparing, StatusReady, true},
		{"preparingToCancelled", StatusPreparing, StatusCancelled, true},
		{"readyToServed", StatusReady, StatusServed, true},
		{"readyToCancelled", StatusReady, StatusCancelled, true},
		{"readyBackToPreparing", StatusReady, StatusPreparing, false},
		{"servedIsTerminal", StatusServed, StatusCancelled, false},
		{"cancelledIsTerminal", StatusCancelled, StatusPlaced, false},
		{"selfTransitionRejected", StatusPlaced, StatusPlaced, false},
		{"unknownCurrent", OrderStatus("BOGUS"), StatusPlaced, false},
		{"unknownRequested", StatusPlaced, OrderStatus("BOGUS"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.current, tt.requested); got != tt.want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.current, tt.requested, got, tt.want)
			}
		})
	}
}

func TestTerminalStatusesAcceptNothing(t *testing.T) {
	all := []OrderStatus{StatusDraft, StatusPlaced, StatusAccepted, StatusPreparing, StatusReady, StatusServed, StatusCancelled}
	for _, terminal := range []OrderStatus{StatusServed, StatusCancelled} {
		if !IsTerminalStatus(terminal) {
			t.Errorf("IsTerminalStatus(%s) = false, want true", terminal)
		}
		for _, requested := range all {
			if CanTransition(terminal, requested) {
				t.Errorf("terminal status %s must not transition to %s", terminal, requested)
			}
		}
	}
}

func TestNonTerminalStatuses(t *testing.T) {
	for _, s := range []OrderStatus{StatusDraft, StatusPlaced, StatusAccepted, StatusPreparing, StatusReady} {
		if IsTerminalStatus(s) {
			t.Errorf("IsTerminalStatus(%s) = true, want false", s)
		}
		if len(NextStatuses(s)) == 0 {
			t.Errorf("NextStatuses(%s) is empty for a non-terminal status", s)
		}
	}
}

func TestValidOrderStatus(t *testing.T) {
	if !ValidOrderStatus(StatusPreparing) {
		t.Error("ValidOrderStatus(PREPARING) = false, want true")
	}
	if ValidOrderStatus(OrderStatus("DELIVERED")) {
		t.Error("ValidOrderStatus(DELIVERED) = true, want false")
	}
	if ValidOrderStatus("") {
		t.Error("ValidOrderStatus(\"\") = true, want false")
	}
}

func TestNextStatusesReturnsCopy(t *testing.T) {
	next := NextStatuses(StatusPlaced)
	if len(next) == 0 {
		t.Fatal("NextStatuses(PLACED) is empty")
	}
	next[0] = StatusServed
	if CanTransition(StatusPlaced, StatusServed) {
		t.Error("mutating NextStatuses result leaked into the transition table")
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		minor int64
		want  string
	}{
		{2200, "22.00"},
		{1205, "12.05"},
		{5, "0.05"},
		{0, "0.00"},
		{-150, "-1.50"},
	}
	for _, tt := range tests {
		if got := FormatAmount(tt.minor); got != tt.want {
			t.Errorf("FormatAmount(%d) = %q, want %q", tt.minor, got, tt.want)
		}
	}
}
