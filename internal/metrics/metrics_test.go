package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/kotche/notes/internal/model"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", Outcome(nil))
	assert.Equal(t, "invalid_argument", Outcome(model.Errorf(model.ErrInvalidArgument, "x")))
	assert.Equal(t, "not_found", Outcome(model.ErrNoteNotFound))
	assert.Equal(t, "conflict", Outcome(model.ErrEmailTaken))
	assert.Equal(t, "unauthorized", Outcome(model.Errorf(model.ErrUnauthorized, "wrong credentials")))
	assert.Equal(t, "error", Outcome(errors.New("boom")))
}

func TestObserve(t *testing.T) {
	before := testutil.ToFloat64(OperationsCounter.WithLabelValues("AddNote", "ok"))
	Observe("AddNote", time.Now(), nil)
	assert.Equal(t, before+1, testutil.ToFloat64(OperationsCounter.WithLabelValues("AddNote", "ok")))
}
