package services

import (
	"context"
)

type mockApprover struct {
	approved bool
	err      error
	calls    int
}

func (m *mockApprover) RequestApproval(_ context.Context, _ string) (bool, error) {
	m.calls++
	return m.approved, m.err
}
