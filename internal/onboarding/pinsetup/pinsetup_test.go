package pinsetup

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/novara/internal/onboarding"
)

func enter(t *testing.T, c *Controller, pin string) {
	t.Helper()
	for _, r := range pin {
		require.NoError(t, c.Dispatch(DigitPressed{Digit: int(r - '0')}))
	}
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

func TestDefaults(t *testing.T) {
	c := New(DefaultParams())
	require.Equal(t, State{Stage: Create, BiometricsEnabled: true}, c.State())
}

func TestDigitGuards(t *testing.T) {
	c := New(DefaultParams())
	require.NoError(t, c.Dispatch(DigitPressed{Digit: -1}))
	require.NoError(t, c.Dispatch(DigitPressed{Digit: 10}))
	require.Empty(t, c.State().PinInput)

	enter(t, c, "1234567")
	require.Equal(t, "123456", c.State().PinInput)
	require.True(t, c.State().IsPinComplete())
}

func TestBackspace(t *testing.T) {
	c := New(DefaultParams())
	require.NoError(t, c.Dispatch(BackspacePressed{}))
	require.Empty(t, c.State().PinInput)

	enter(t, c, "12")
	require.NoError(t, c.Dispatch(BackspacePressed{}))
	require.Equal(t, "1", c.State().PinInput)
}

func TestInputLengthStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	c := New(DefaultParams())
	for i := 0; i < 2000; i++ {
		var a Action
		switch rng.IntN(5) {
		case 0:
			a = BackspacePressed{}
		case 1:
			a = ConfirmPressed{}
		case 2:
			a = ToggleBiometrics{}
		default:
			a = DigitPressed{Digit: rng.IntN(12) - 1}
		}
		_ = c.Dispatch(a)
		n := len(c.State().PinInput)
		require.GreaterOrEqual(t, n, 0)
		require.LessOrEqual(t, n, RequiredLength)
	}
}

func TestConfirmShortPinKeepsStage(t *testing.T) {
	for _, stage := range []Stage{Create, Confirm} {
		t.Run(stage.String(), func(t *testing.T) {
			c := New(DefaultParams())
			if stage == Confirm {
				enter(t, c, "123456")
				require.NoError(t, c.Dispatch(ConfirmPressed{}))
			}
			enter(t, c, "12")

			err := c.Dispatch(ConfirmPressed{})
			var verr *onboarding.ValidationError
			require.True(t, errors.As(err, &verr))

			st := c.State()
			require.Equal(t, stage, st.Stage)
			require.Equal(t, "El PIN debe tener 6 dígitos.", st.ErrorMessage)
			require.Equal(t, "12", st.PinInput)
		})
	}
}

func TestCreateThenMismatchStaysInConfirm(t *testing.T) {
	c := New(DefaultParams())
	enter(t, c, "123456")
	require.NoError(t, c.Dispatch(ConfirmPressed{}))

	st := c.State()
	require.Equal(t, Confirm, st.Stage)
	require.Equal(t, "123456", st.FirstPin)
	require.Empty(t, st.PinInput)
	require.Empty(t, st.ErrorMessage)

	enter(t, c, "654321")
	err := c.Dispatch(ConfirmPressed{})
	require.Error(t, err)

	st = c.State()
	require.Equal(t, Confirm, st.Stage)
	require.Equal(t, "123456", st.FirstPin)
	require.Empty(t, st.PinInput)
	require.Equal(t, onboarding.MsgPinMismatch, st.ErrorMessage)
	require.Zero(t, c.effects.Pending())
}

func TestConfirmMatchEmitsAndResets(t *testing.T) {
	c := New(DefaultParams())
	enter(t, c, "123456")
	require.NoError(t, c.Dispatch(ConfirmPressed{}))
	enter(t, c, "123456")
	require.NoError(t, c.Dispatch(ConfirmPressed{}))

	require.Equal(t, onboarding.PinReady{Pin: "123456", BiometricsEnabled: true}, nextEffect(t, c))
	require.Equal(t, InitialState(true), c.State())
}

func TestResetPreservesBiometricsAndMatchesFreshInstance(t *testing.T) {
	c := New(DefaultParams())
	require.NoError(t, c.Dispatch(ToggleBiometrics{}))
	enter(t, c, "908172")
	require.NoError(t, c.Dispatch(ConfirmPressed{}))
	require.NoError(t, c.Dispatch(ToggleBiometrics{}))
	require.NoError(t, c.Dispatch(ToggleBiometrics{}))
	enter(t, c, "908172")
	require.NoError(t, c.Dispatch(ConfirmPressed{}))

	eff := nextEffect(t, c)
	ready, ok := eff.(onboarding.PinReady)
	require.True(t, ok)
	require.False(t, ready.BiometricsEnabled)

	fresh := New(Params{BiometricsEnabled: ready.BiometricsEnabled})
	require.Equal(t, fresh.State(), c.State())
}

func TestSavingStateIsObservable(t *testing.T) {
	c := New(DefaultParams())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	updates := c.Updates(ctx)
	<-updates

	enter(t, c, "111111")
	require.NoError(t, c.Dispatch(ConfirmPressed{}))
	enter(t, c, "111111")
	require.NoError(t, c.Dispatch(ConfirmPressed{}))

	var sawSaving bool
	deadline := time.After(2 * time.Second)
	for !sawSaving {
		select {
		case st := <-updates:
			if st.IsSaving {
				sawSaving = true
				require.Equal(t, Confirm, st.Stage)
			}
		case <-deadline:
			t.Fatalf("saving state never published")
		}
	}
	require.False(t, c.State().IsSaving)
}

func TestToggleBiometricsAnyStage(t *testing.T) {
	c := New(DefaultParams())
	require.NoError(t, c.Dispatch(ToggleBiometrics{}))
	require.False(t, c.State().BiometricsEnabled)

	enter(t, c, "123456")
	require.NoError(t, c.Dispatch(ConfirmPressed{}))
	require.NoError(t, c.Dispatch(ToggleBiometrics{}))
	require.True(t, c.State().BiometricsEnabled)
	require.Equal(t, Confirm, c.State().Stage)
}

func TestErrorDismissedAndDigitClearError(t *testing.T) {
	c := New(DefaultParams())
	_ = c.Dispatch(ConfirmPressed{})
	require.NotEmpty(t, c.State().ErrorMessage)
	require.NoError(t, c.Dispatch(ErrorDismissed{}))
	require.Empty(t, c.State().ErrorMessage)

	_ = c.Dispatch(ConfirmPressed{})
	enter(t, c, "1")
	require.Empty(t, c.State().ErrorMessage)
}
