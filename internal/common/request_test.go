package common

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathID(t *testing.T) {
	t.Run("parses the mux variable", func(t *testing.T) {
		req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/posts/42", nil),
			map[string]string{"id": "42"})

		id, err := PathID(req, "id")
		require.NoError(t, err)
		assert.Equal(t, uint64(42), id)
	})

	t.Run("rejects non-numeric and missing ids", func(t *testing.T) {
		for name, vars := range map[string]map[string]string{
			"non-numeric": {"id": "abc"},
			"negative":    {"id": "-1"},
			"missing":     {},
		} {
			req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/posts/x", nil), vars)
			_, err := PathID(req, "id")
			assert.ErrorIs(t, err, ErrInvalidArgument, name)
		}
	})
}
