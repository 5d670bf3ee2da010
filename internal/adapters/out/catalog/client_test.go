package catalog_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/IshCodeBellz/NVRSTL-sub000/internal/adapters/out/catalog"
	"github.com/IshCodeBellz/NVRSTL-sub000/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_RestoreStock(t *testing.T) {
	t.Run("should post order id and reason and decode the result", func(t *testing.T) {
		orderID := kernel.NewUUID()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/api/v1/stock/restore", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, orderID.String(), body["orderId"])
			assert.Equal(t, "order cancelled", body["reason"])

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"success": true, "restoredItemCount": 3}`))
		}))
		defer server.Close()

		client := catalog.NewClient(server.URL)

		result, err := client.RestoreStock(t.Context(), orderID, "order cancelled")

		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, 3, result.RestoredItemCount)
	})

	t.Run("should pass an unsuccessful outcome through without error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success": false, "restoredItemCount": 0}`))
		}))
		defer server.Close()

		client := catalog.NewClient(server.URL)

		result, err := client.RestoreStock(t.Context(), kernel.NewUUID(), "order cancelled")

		require.NoError(t, err)
		assert.False(t, result.Success)
	})

	t.Run("should surface non-200 responses as errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "reservation not found", http.StatusNotFound)
		}))
		defer server.Close()

		client := catalog.NewClient(server.URL)

		_, err := client.RestoreStock(t.Context(), kernel.NewUUID(), "order cancelled")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
		assert.Contains(t, err.Error(), "reservation not found")
	})

	t.Run("should surface unreachable service as error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close()

		client := catalog.NewClient(server.URL)

		_, err := client.RestoreStock(t.Context(), kernel.NewUUID(), "order cancelled")

		require.Error(t, err)
	})
}
