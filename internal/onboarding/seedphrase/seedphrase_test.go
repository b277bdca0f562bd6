package seedphrase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/novara/internal/onboarding"
)

var fixedWords = []string{
	"oasis", "cristal", "satelite", "bosque", "luz", "atlantico",
	"modulo", "origen", "trueno", "vortice", "nexo", "aurora",
}

func newController(t *testing.T) *Controller {
	t.Helper()
	c, err := New(WordSourceFunc(func() ([]string, error) {
		return append([]string(nil), fixedWords...), nil
	}))
	require.NoError(t, err)
	return c
}

func nextEffect(t *testing.T, c *Controller) onboarding.Effect {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	select {
	case e := <-c.Effects(ctx):
		return e
	case <-ctx.Done():
		t.Fatalf("no effect emitted")
	}
	return nil
}

func TestNewRejectsWrongWordCount(t *testing.T) {
	_, err := New(WordSourceFunc(func() ([]string, error) {
		return []string{"a", "b"}, nil
	}))
	require.Error(t, err)

	boom := errors.New("boom")
	_, err = New(WordSourceFunc(func() ([]string, error) { return nil, boom }))
	require.ErrorIs(t, err, boom)
}

func TestInitialState(t *testing.T) {
	c := newController(t)
	require.Equal(t, State{Words: fixedWords}, c.State())
}

func TestCopyRequiresConfirmation(t *testing.T) {
	c := newController(t)
	require.NoError(t, c.Dispatch(CopyRequested{}))
	require.True(t, c.State().ShowCopyWarning)
	require.Zero(t, c.effects.Pending())

	require.NoError(t, c.Dispatch(CopyDismissed{}))
	st := c.State()
	require.False(t, st.ShowCopyWarning)
	require.False(t, st.IsAcknowledged)
	require.Zero(t, c.effects.Pending())
}

func TestCopyConfirmedAcknowledgesAndEmits(t *testing.T) {
	c := newController(t)
	require.NoError(t, c.Dispatch(CopyRequested{}))
	require.NoError(t, c.Dispatch(CopyConfirmed{}))

	st := c.State()
	require.True(t, st.IsAcknowledged)
	require.False(t, st.ShowCopyWarning)

	eff := nextEffect(t, c)
	cp, ok := eff.(onboarding.CopyToClipboard)
	require.True(t, ok)
	require.Equal(t, fixedWords, cp.Words)
	require.Equal(t, "oasis cristal satelite bosque luz atlantico modulo origen trueno vortice nexo aurora", cp.Text())
}

func TestRepeatedCopyKeepsSinglePendingEffect(t *testing.T) {
	c := newController(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, c.Dispatch(CopyConfirmed{}))
	}
	require.Equal(t, 1, c.effects.Pending())
	require.Equal(t, 4, c.effects.Dropped())
}

func TestContinueRequiresAcknowledgement(t *testing.T) {
	c := newController(t)
	err := c.Dispatch(ContinuePressed{})
	var verr *onboarding.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, onboarding.MsgBackupUnconfirmed, c.State().ErrorMessage)
	require.Zero(t, c.effects.Pending())

	require.NoError(t, c.Dispatch(AcknowledgementChanged{Checked: true}))
	require.Empty(t, c.State().ErrorMessage)
	require.NoError(t, c.Dispatch(ContinuePressed{}))
	require.Equal(t, onboarding.Continue{}, nextEffect(t, c))

	st := c.State()
	require.False(t, st.IsProcessing)
	require.True(t, st.IsAcknowledged)
	require.Equal(t, fixedWords, st.Words)
}

func TestUncheckingBlocksContinueAgain(t *testing.T) {
	c := newController(t)
	require.NoError(t, c.Dispatch(CopyConfirmed{}))
	require.NoError(t, c.Dispatch(AcknowledgementChanged{Checked: false}))
	require.Error(t, c.Dispatch(ContinuePressed{}))
}

func TestWordsNeverChange(t *testing.T) {
	c := newController(t)
	st := c.State()
	st.Words[0] = "tampered"
	require.NoError(t, c.Dispatch(CopyConfirmed{}))

	cp := nextEffect(t, c).(onboarding.CopyToClipboard)
	require.Equal(t, "oasis", cp.Words[0])
	require.Equal(t, "oasis", c.State().Words[0])

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	updates := c.Updates(ctx)
	first := <-updates
	first.Words[0] = "tampered"
	require.NoError(t, c.Dispatch(AcknowledgementChanged{Checked: false}))
	second := <-updates
	require.Equal(t, "oasis", second.Words[0])
	require.Equal(t, "oasis", c.State().Words[0])
	require.Equal(t, fixedWords, c.State().Words)
}

func TestErrorDismissed(t *testing.T) {
	c := newController(t)
	_ = c.Dispatch(ContinuePressed{})
	require.NoError(t, c.Dispatch(ErrorDismissed{}))
	require.Empty(t, c.State().ErrorMessage)

	_ = c.Dispatch(ContinuePressed{})
	require.NoError(t, c.Dispatch(CopyRequested{}))
	require.Empty(t, c.State().ErrorMessage)
}
