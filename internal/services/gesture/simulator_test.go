package gesture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/gesture-speak/internal/models"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

type fakeCamera struct {
	mu      sync.Mutex
	err     error
	streams []*fakeStream
	events  []string
}

type fakeStream struct {
	camera     *fakeCamera
	id         string
	releases   int
	releaseErr error
}

func (c *fakeCamera) Acquire(_ context.Context) (Stream, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	st := &fakeStream{camera: c, id: fmt.Sprintf("s%d", len(c.streams)+1)}
	c.streams = append(c.streams, st)
	c.events = append(c.events, "acquire "+st.id)
	return st, nil
}

func (c *fakeCamera) Events() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.events...)
}

func (c *fakeCamera) Releases() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]int, len(c.streams))
	for i, st := range c.streams {
		out[i] = st.releases
	}
	return out
}

func (s *fakeStream) ID() string { return s.id }

func (s *fakeStream) Release() error {
	s.camera.mu.Lock()
	defer s.camera.mu.Unlock()
	s.releases++
	s.camera.events = append(s.camera.events, "release "+s.id)
	return s.releaseErr
}

type fakeSpeaker struct {
	mu     sync.Mutex
	voices []string
	spoken []Utterance
}

func (f *fakeSpeaker) Voices() []string { return f.voices }

func (f *fakeSpeaker) Speak(_ context.Context, u Utterance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.spoken = append(f.spoken, u)
	return nil
}

func (f *fakeSpeaker) Spoken() []Utterance {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Utterance(nil), f.spoken...)
}

type sessionFunc func() models.Session

func (f sessionFunc) Current() models.Session { return f() }

func anonymous() models.Session { return models.EmptySession() }

type harness struct {
	sim     *Simulator
	clock   *clockwork.FakeClock
	camera  *fakeCamera
	results chan models.GestureResult
}

func newHarness(t *testing.T, sessions SessionSource, speaker Speaker) *harness {
	t.Helper()
	h := &harness{
		clock:   clockwork.NewFakeClock(),
		camera:  &fakeCamera{},
		results: make(chan models.GestureResult, 64),
	}
	var (
		mu   sync.Mutex
		next int
	)
	opts := Options{
		Clock: h.clock,
		Pick: func(n int) int {
			mu.Lock()
			defer mu.Unlock()
			i := next % n
			next++
			return i
		},
		OnRecognized: func(r models.GestureResult) { h.results <- r },
	}
	if speaker != nil {
		opts.Speaker = speaker
	}
	h.sim = NewSimulator(newNoopLogger(), h.camera, sessions, opts)
	t.Cleanup(func() { _ = h.sim.Close() })
	return h
}

func (h *harness) tick(t *testing.T) models.GestureResult {
	t.Helper()
	h.clock.Advance(DefaultInterval)
	return h.next(t)
}

func (h *harness) next(t *testing.T) models.GestureResult {
	t.Helper()
	select {
	case r := <-h.results:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("no phrase emitted")
		return models.GestureResult{}
	}
}

func (h *harness) expectNone(t *testing.T) {
	t.Helper()
	select {
	case r := <-h.results:
		t.Fatalf("unexpected phrase %q", r.Text)
	case <-time.After(50 * time.Millisecond):
	}
}

func (h *harness) drain() {
	for {
		select {
		case <-h.results:
		default:
			return
		}
	}
}

func (h *harness) waitState(t *testing.T, want State) {
	t.Helper()
	require.Eventually(t, func() bool { return h.sim.State() == want }, 2*time.Second, 5*time.Millisecond)
}

func TestSimulator_CaptureCycleReleasesOnce(t *testing.T) {
	h := newHarness(t, sessionFunc(anonymous), nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		state, err := h.sim.ToggleCapture(ctx)
		require.NoError(t, err)
		assert.Equal(t, StateCapturing, state)

		state, err = h.sim.ToggleCapture(ctx)
		require.NoError(t, err)
		assert.Equal(t, StateIdle, state)
	}
	require.NoError(t, h.sim.DisableCapture())

	assert.Equal(t, []int{1, 1, 1}, h.camera.Releases())
}

func TestSimulator_EnableReleasesPreviousStreamFirst(t *testing.T) {
	h := newHarness(t, sessionFunc(anonymous), nil)
	ctx := context.Background()

	require.NoError(t, h.sim.EnableCapture(ctx))
	require.NoError(t, h.sim.EnableCapture(ctx))

	assert.Equal(t, []string{"acquire s1", "release s1", "acquire s2"}, h.camera.Events())
	assert.Equal(t, "s2", h.sim.Snapshot().StreamID)
}

func TestSimulator_EnableReportsPreviousReleaseFailure(t *testing.T) {
	h := newHarness(t, sessionFunc(anonymous), nil)
	ctx := context.Background()
	stuck := errors.New("device stuck")

	require.NoError(t, h.sim.EnableCapture(ctx))
	h.camera.mu.Lock()
	h.camera.streams[0].releaseErr = stuck
	h.camera.mu.Unlock()

	err := h.sim.EnableCapture(ctx)
	require.ErrorIs(t, err, stuck)
	assert.NotErrorIs(t, err, ErrCameraUnavailable)
	assert.Equal(t, StateCapturing, h.sim.State())
	assert.Equal(t, "s2", h.sim.Snapshot().StreamID)

	require.NoError(t, h.sim.DisableCapture())
	assert.Equal(t, []int{1, 1}, h.camera.Releases())
}

func TestSimulator_CameraDenied(t *testing.T) {
	h := newHarness(t, sessionFunc(anonymous), nil)
	h.camera.err = errors.New("permission denied")

	err := h.sim.EnableCapture(context.Background())
	require.ErrorIs(t, err, ErrCameraUnavailable)
	assert.Equal(t, StateIdle, h.sim.State())

	assert.ErrorIs(t, h.sim.StartEmitting(), ErrCameraOff)
}

func TestSimulator_DeniedAfterHeldStreamStaysIdle(t *testing.T) {
	h := newHarness(t, sessionFunc(anonymous), nil)
	ctx := context.Background()

	require.NoError(t, h.sim.EnableCapture(ctx))
	require.NoError(t, h.sim.StartEmitting())

	h.camera.err = errors.New("device busy")
	require.ErrorIs(t, h.sim.EnableCapture(ctx), ErrCameraUnavailable)

	assert.Equal(t, StateIdle, h.sim.State())
	assert.Equal(t, []int{1}, h.camera.Releases())
	h.clock.Advance(DefaultInterval)
	h.expectNone(t)
}

func TestSimulator_EmitsUntilCutoff(t *testing.T) {
	h := newHarness(t, sessionFunc(anonymous), nil)
	start := h.clock.Now()

	require.NoError(t, h.sim.EnableCapture(context.Background()))
	require.NoError(t, h.sim.StartEmitting())
	assert.Equal(t, StateEmitting, h.sim.State())

	for i := 0; i < 4; i++ {
		r := h.tick(t)
		assert.Equal(t, Phrases[i], r.Text)
		assert.True(t, start.Add(time.Duration(i+1)*DefaultInterval).Equal(r.Timestamp))
	}
	assert.Equal(t, StateEmitting, h.sim.State())

	h.clock.Advance(DefaultInterval)
	h.waitState(t, StateCapturing)
	h.drain()

	h.clock.Advance(10 * DefaultInterval)
	h.expectNone(t)

	snap := h.sim.Snapshot()
	require.NotNil(t, snap.LastRecognized)
	assert.Contains(t, Phrases, snap.LastRecognized.Text)
	assert.Equal(t, "s1", snap.StreamID)
}

func TestSimulator_RestartIgnoresStaleCutoff(t *testing.T) {
	h := newHarness(t, sessionFunc(anonymous), nil)
	require.NoError(t, h.sim.EnableCapture(context.Background()))

	state, err := h.sim.ToggleRecording()
	require.NoError(t, err)
	require.Equal(t, StateEmitting, state)

	h.tick(t) // 3s
	h.clock.Advance(2 * time.Second)

	state, err = h.sim.ToggleRecording() // 5s
	require.NoError(t, err)
	require.Equal(t, StateCapturing, state)

	h.clock.Advance(time.Second)
	state, err = h.sim.ToggleRecording() // 6s, новая отсечка на 21s
	require.NoError(t, err)
	require.Equal(t, StateEmitting, state)

	h.tick(t) // 9s
	h.tick(t) // 12s
	h.tick(t) // 15s
	assert.Equal(t, StateEmitting, h.sim.State())
	h.tick(t) // 18s

	h.clock.Advance(DefaultInterval) // 21s
	h.waitState(t, StateCapturing)
}

func TestSimulator_CameraToggleMidRecording(t *testing.T) {
	h := newHarness(t, sessionFunc(anonymous), nil)
	ctx := context.Background()

	require.NoError(t, h.sim.EnableCapture(ctx))
	require.NoError(t, h.sim.StartEmitting())
	h.tick(t)

	require.NoError(t, h.sim.DisableCapture())
	assert.Equal(t, StateIdle, h.sim.State())
	h.clock.Advance(DefaultInterval)
	h.expectNone(t)

	require.NoError(t, h.sim.EnableCapture(ctx))
	assert.Equal(t, StateCapturing, h.sim.State())
	h.clock.Advance(DefaultDuration)
	h.expectNone(t)
	assert.Equal(t, StateCapturing, h.sim.State())

	assert.Equal(t, []int{1, 0}, h.camera.Releases())
}

func TestSimulator_StopEmittingKeepsCamera(t *testing.T) {
	h := newHarness(t, sessionFunc(anonymous), nil)
	require.NoError(t, h.sim.EnableCapture(context.Background()))
	require.NoError(t, h.sim.StartEmitting())
	require.NoError(t, h.sim.StartEmitting())

	h.sim.StopEmitting()
	h.sim.StopEmitting()

	assert.Equal(t, StateCapturing, h.sim.State())
	h.clock.Advance(DefaultInterval)
	h.expectNone(t)
	assert.Equal(t, []int{0}, h.camera.Releases())
}

func TestSimulator_CloseDuringEmission(t *testing.T) {
	h := newHarness(t, sessionFunc(anonymous), nil)
	require.NoError(t, h.sim.EnableCapture(context.Background()))
	require.NoError(t, h.sim.StartEmitting())

	require.NoError(t, h.sim.Close())
	require.NoError(t, h.sim.Close())

	h.clock.Advance(DefaultDuration)
	h.expectNone(t)
	assert.Equal(t, StateIdle, h.sim.State())
	assert.Equal(t, []int{1}, h.camera.Releases())
}

func premiumSession(voice models.Voice) sessionFunc {
	return func() models.Session {
		return models.NewSession(&models.User{ID: "1", Email: "demo@example.com", IsPremium: true, Voice: voice})
	}
}

func TestSimulator_PremiumSpeaks(t *testing.T) {
	speaker := &fakeSpeaker{voices: []string{"Google UK English Female", "Google UK English Male"}}
	voice := models.CustomVoice(models.VoiceSettings{Pitch: 1.2, Speed: 0.8, Voice: "male-1"})
	h := newHarness(t, premiumSession(voice), speaker)

	require.NoError(t, h.sim.EnableCapture(context.Background()))
	require.NoError(t, h.sim.StartEmitting())
	r := h.tick(t)

	require.Len(t, speaker.Spoken(), 1)
	assert.Equal(t, Utterance{Text: r.Text, Pitch: 1.2, Rate: 0.8, Voice: "Google UK English Male"}, speaker.Spoken()[0])
}

func TestSimulator_FreeUserIsSilent(t *testing.T) {
	speaker := &fakeSpeaker{voices: []string{"Google UK English Female"}}
	free := func() models.Session {
		return models.NewSession(&models.User{ID: "2", Email: "new@example.com", Voice: models.DefaultVoice()})
	}
	h := newHarness(t, sessionFunc(free), speaker)

	require.NoError(t, h.sim.EnableCapture(context.Background()))
	require.NoError(t, h.sim.StartEmitting())
	h.tick(t)
	h.tick(t)

	assert.Empty(t, speaker.Spoken())
	assert.ErrorIs(t, h.sim.SpeakCurrent(context.Background()), ErrNotPremium)
}

func TestSimulator_NoSpeakerStillEmits(t *testing.T) {
	h := newHarness(t, premiumSession(models.DefaultVoice()), nil)

	require.NoError(t, h.sim.EnableCapture(context.Background()))
	require.NoError(t, h.sim.StartEmitting())
	r := h.tick(t)

	assert.Equal(t, Phrases[0], r.Text)
	assert.ErrorIs(t, h.sim.SpeakCurrent(context.Background()), ErrSpeechUnsupported)
}

func TestSimulator_SpeakCurrent(t *testing.T) {
	speaker := &fakeSpeaker{voices: []string{"Samantha"}}
	h := newHarness(t, premiumSession(models.DefaultVoice()), speaker)
	ctx := context.Background()

	assert.ErrorIs(t, h.sim.SpeakCurrent(ctx), ErrNothingToSpeak)

	require.NoError(t, h.sim.EnableCapture(ctx))
	require.NoError(t, h.sim.StartEmitting())
	r := h.tick(t)
	h.sim.StopEmitting()

	require.NoError(t, h.sim.SpeakCurrent(ctx))
	spoken := speaker.Spoken()
	require.Len(t, spoken, 2)
	assert.Equal(t, Utterance{Text: r.Text, Pitch: 1, Rate: 1}, spoken[1])
}

func TestState_MarshalText(t *testing.T) {
	for state, want := range map[State]string{
		StateIdle:      "idle",
		StateCapturing: "capturing",
		StateEmitting:  "emitting",
		State(42):      "unknown",
	} {
		got, err := state.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, want, string(got))
	}
}
