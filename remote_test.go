package main

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Archna-29/portfolio/internal/player"
)

type sentCommands struct {
	mu   sync.Mutex
	cmds []audioCommand
	err  error
}

func (s *sentCommands) send(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.cmds = append(s.cmds, v.(audioCommand))
	return nil
}

func (s *sentCommands) last(t *testing.T) audioCommand {
	t.Helper()
	var cmd audioCommand
	require.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		if len(s.cmds) == 0 {
			return false
		}
		cmd = s.cmds[len(s.cmds)-1]
		return true
	}, time.Second, time.Millisecond)
	return cmd
}

func TestRemoteAudioPlayResolves(t *testing.T) {
	sent := &sentCommands{}
	a := newRemoteAudio(sent.send)

	errc := make(chan error, 1)
	go func() { errc <- a.Play(context.Background()) }()

	cmd := sent.last(t)
	require.Equal(t, "play", cmd.Op)
	require.NotZero(t, cmd.ID)

	a.resolve(cmd.ID, "")
	require.NoError(t, <-errc)
	require.Equal(t, 0, a.outstanding())
}

func TestRemoteAudioPlayRejected(t *testing.T) {
	sent := &sentCommands{}
	a := newRemoteAudio(sent.send)

	errc := make(chan error, 1)
	go func() { errc <- a.Play(context.Background()) }()

	cmd := sent.last(t)
	a.resolve(cmd.ID, "NotAllowedError")
	require.ErrorContains(t, <-errc, "NotAllowedError")
}

func TestRemoteAudioContextCancel(t *testing.T) {
	a := newRemoteAudio((&sentCommands{}).send)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	require.ErrorIs(t, a.Pause(ctx), context.DeadlineExceeded)
	require.Equal(t, 0, a.outstanding())
}

func TestRemoteAudioSendFailure(t *testing.T) {
	sent := &sentCommands{err: errors.New("broken pipe")}
	a := newRemoteAudio(sent.send)

	require.ErrorContains(t, a.Play(context.Background()), "broken pipe")
	require.Equal(t, 0, a.outstanding())
}

func TestRemoteAudioCloseFailsPending(t *testing.T) {
	sent := &sentCommands{}
	a := newRemoteAudio(sent.send)

	errc := make(chan error, 1)
	go func() { errc <- a.Play(context.Background()) }()
	sent.last(t)

	require.NoError(t, a.Close())
	require.ErrorIs(t, <-errc, player.ErrClosed)
	require.Equal(t, "stop", sent.last(t).Op)

	require.ErrorIs(t, a.SetVolume(0.2), player.ErrClosed)
	require.ErrorIs(t, a.Play(context.Background()), player.ErrClosed)
	require.NoError(t, a.Close())
}

func TestRemoteAudioVolume(t *testing.T) {
	sent := &sentCommands{}
	a := newRemoteAudio(sent.send)

	require.NoError(t, a.SetVolume(0.42))
	cmd := sent.last(t)
	require.Equal(t, "volume", cmd.Op)
	require.Equal(t, 0.42, cmd.Volume)
	require.Zero(t, cmd.ID)

	// Later play requests carry the volume along.
	go a.Play(context.Background())
	require.Eventually(t, func() bool {
		c := sent.last(t)
		return c.Op == "play" && c.Volume == 0.42
	}, time.Second, time.Millisecond)
	a.Close()
}

func TestRemoteAudioCloseWithDeadSocket(t *testing.T) {
	sent := &sentCommands{}
	a := newRemoteAudio(sent.send)

	errc := make(chan error, 1)
	go func() { errc <- a.Pause(context.Background()) }()
	sent.last(t)

	sent.mu.Lock()
	sent.err = errors.New("use of closed network connection")
	sent.mu.Unlock()

	require.NoError(t, a.Close(), "stop is best effort")
	require.ErrorIs(t, <-errc, player.ErrClosed)
}
