package runner

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_MatchesKind(t *testing.T) {
	cause := fmt.Errorf("locator vanished")
	err := classify(ErrElementNotFound, cause)

	assert.True(t, errors.Is(err, ErrElementNotFound))
	assert.False(t, errors.Is(err, ErrTimeout))
	assert.False(t, errors.Is(err, ErrNavigation))
	assert.False(t, errors.Is(err, ErrPermissionSetup))
}

func TestClassify_KeepsCauseChain(t *testing.T) {
	cause := errors.New("context deadline exceeded")
	wrapped := fmt.Errorf("waiting for selector: %w", cause)
	err := classify(ErrTimeout, wrapped)

	assert.True(t, errors.Is(err, ErrTimeout))
	assert.True(t, errors.Is(err, cause), "the original cause stays reachable")
	assert.Contains(t, err.Error(), "wait timed out")
	assert.Contains(t, err.Error(), "context deadline exceeded")
}

func TestStepError_CarriesContext(t *testing.T) {
	inner := classify(ErrElementNotFound, errors.New("no such control"))
	err := error(&StepError{Index: 2, Step: `click button "Login"`, Err: inner})
	err = fmt.Errorf("scenario failed: %w", err)

	var stepErr *StepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, 2, stepErr.Index)
	assert.Equal(t, `click button "Login"`, stepErr.Step)

	assert.True(t, errors.Is(err, ErrElementNotFound), "kind survives the step wrapper")
}

func TestStepError_MessageIsOneBased(t *testing.T) {
	err := &StepError{Index: 0, Step: `fill "Password"`, Err: errors.New("gone")}
	assert.Equal(t, `step 1 (fill "Password"): gone`, err.Error())
}
