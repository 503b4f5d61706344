package cli

import (
	"bytes"
	"context"
	"testing"

	"gigmarket/internal/domain/entity"
	"gigmarket/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSession captures signup calls; everything else is inert.
type recordingSession struct {
	usecase.SessionUsecase

	signups []usecase.SignupInput
}

func (r *recordingSession) Signup(_ context.Context, input usecase.SignupInput) error {
	r.signups = append(r.signups, input)

	return nil
}

func TestRunner_Signup_RejectsAdminBeforeAnyCall(t *testing.T) {
	session := &recordingSession{}
	r := &runner{session: session, out: &bytes.Buffer{}}

	err := r.dispatch(context.Background(), "signup mallory mallory@example.com longenough admin")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "role must be one of")
	assert.Empty(t, session.signups)
}

func TestRunner_Signup_AcceptsSelfServiceRoles(t *testing.T) {
	session := &recordingSession{}
	r := &runner{session: session, out: &bytes.Buffer{}}

	require.NoError(t, r.dispatch(context.Background(), "signup ada ada@example.com longenough freelancer"))

	require.Len(t, session.signups, 1)
	assert.Equal(t, entity.RoleFreelancer, session.signups[0].Role)
}
