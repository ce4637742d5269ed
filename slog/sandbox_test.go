package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/cardsnap"
	"github.com/fwojciec/cardsnap/mock"
	cardslog "github.com/fwojciec/cardsnap/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSandbox_Render(t *testing.T) {
	t.Parallel()

	t.Run("logs card id and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		target := &mock.Target{}
		inner := &mock.Sandbox{
			RenderFn: func(context.Context, *cardsnap.Card) (cardsnap.Target, error) {
				return target, nil
			},
		}

		sandbox := cardslog.NewLoggingSandbox(inner, logger)
		got, err := sandbox.Render(context.Background(), &cardsnap.Card{ID: "abc", Source: "a.html", Markup: "<div></div>"})

		require.NoError(t, err)
		assert.Same(t, target, got)
		output := buf.String()
		assert.Contains(t, output, "render")
		assert.Contains(t, output, "id=abc")
		assert.Contains(t, output, "source=a.html")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Sandbox{
			RenderFn: func(context.Context, *cardsnap.Card) (cardsnap.Target, error) {
				return nil, errors.New("tab crashed")
			},
		}

		sandbox := cardslog.NewLoggingSandbox(inner, logger)
		_, err := sandbox.Render(context.Background(), &cardsnap.Card{ID: "abc"})

		require.Error(t, err)
		assert.Contains(t, buf.String(), `err="tab crashed"`)
	})
}

func TestLoggingSandbox_Close(t *testing.T) {
	t.Parallel()

	closeCalled := false
	inner := &mock.Sandbox{
		CloseFn: func() error {
			closeCalled = true
			return nil
		},
	}

	sandbox := cardslog.NewLoggingSandbox(inner, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	require.NoError(t, sandbox.Close())
	assert.True(t, closeCalled)
}

func TestLoggingCapturer_Capture(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.Capturer{
		CaptureFn: func(context.Context, cardsnap.Target) (string, error) {
			return "data:image/png;base64,AAAA", nil
		},
	}

	capturer := cardslog.NewLoggingCapturer(inner, logger)
	url, err := capturer.Capture(context.Background(), &mock.Target{})

	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AAAA", url)
	assert.Contains(t, buf.String(), "capture")
	assert.Contains(t, buf.String(), "bytes=26")
}
