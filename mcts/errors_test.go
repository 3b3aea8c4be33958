package mcts

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvalFailureWrappingSupportsErrorsIs(t *testing.T) {
	wrapped := fmt.Errorf("%w: %s", ErrEvalFailure, "network down")
	assert.True(t, errors.Is(wrapped, ErrEvalFailure))
}
