package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/dispofilter/internal/mail/common/log"
)

func plainParser(t *testing.T) Parser {
	t.Helper()
	p, err := NewParser(FormatPlain, "", log.NewNoopLogger())
	require.NoError(t, err)
	return p
}

func TestNewHTTPSource_Validation(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"valid", Options{URL: "https://example.com/list", Parser: plainParser(t)}, false},
		{"empty url", Options{URL: " ", Parser: plainParser(t)}, true},
		{"nil parser", Options{URL: "https://example.com/list"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewHTTPSource(tt.opts)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, s)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.opts.URL, s.URL())
		})
	}
}

func TestHTTPSource_Fetch_Success(t *testing.T) {
	var gotUA string
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		gotUA = r.Header.Get("User-Agent")
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte("mailinator.com\ntrashmail.com\n"))
	}))
	defer srv.Close()

	s, err := NewHTTPSource(Options{URL: srv.URL, Timeout: 5 * time.Second, Parser: plainParser(t)})
	require.NoError(t, err)

	got, err := s.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"mailinator.com", "trashmail.com"}, got)
	assert.Equal(t, 1, calls)
	assert.Equal(t, userAgent, gotUA)
}

func TestHTTPSource_Fetch_Markup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(gistPage))
	}))
	defer srv.Close()

	p, err := NewParser(FormatMarkup, "js-file-line", log.NewNoopLogger())
	require.NoError(t, err)
	s, err := NewHTTPSource(Options{URL: srv.URL, Parser: p, Client: srv.Client()})
	require.NoError(t, err)

	got, err := s.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"0-mail.com", "mailinator.com", "trashmail.com"}, got)
}

func TestHTTPSource_Fetch_Errors(t *testing.T) {
	t.Run("non-200", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "gone", http.StatusNotFound)
		}))
		defer srv.Close()

		s, err := NewHTTPSource(Options{URL: srv.URL, Parser: plainParser(t)})
		require.NoError(t, err)
		_, err = s.Fetch(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
	})

	t.Run("empty document", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer srv.Close()

		s, err := NewHTTPSource(Options{URL: srv.URL, Parser: plainParser(t)})
		require.NoError(t, err)
		_, err = s.Fetch(context.Background())
		assert.ErrorIs(t, err, ErrNoDomains)
	})

	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := srv.URL
		srv.Close()

		s, err := NewHTTPSource(Options{URL: url, Timeout: time.Second, Parser: plainParser(t)})
		require.NoError(t, err)
		_, err = s.Fetch(context.Background())
		assert.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("a.com\n"))
		}))
		defer srv.Close()

		s, err := NewHTTPSource(Options{URL: srv.URL, Parser: plainParser(t)})
		require.NoError(t, err)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = s.Fetch(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("bad url", func(t *testing.T) {
		s, err := NewHTTPSource(Options{URL: "://bad", Parser: plainParser(t)})
		require.NoError(t, err)
		_, err = s.Fetch(context.Background())
		assert.Error(t, err)
	})
}
