package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Runs only against a live deployment, e.g.
// FORMS_TEST_MONGO_URI=mongodb://localhost:27017/forms-test go test ./database
func TestMongoStore(t *testing.T) {
	url := os.Getenv("FORMS_TEST_MONGO_URI")
	if url == "" {
		t.Skip("FORMS_TEST_MONGO_URI not set")
	}

	runStoreTests(t, func(t *testing.T) Store {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		m, err := OpenMongo(ctx, url)
		require.NoError(t, err)
		t.Cleanup(func() {
			m.forms.Drop(context.Background())
			m.responses.Drop(context.Background())
			m.Close()
		})
		_, err = m.forms.DeleteMany(ctx, map[string]any{})
		require.NoError(t, err)
		_, err = m.responses.DeleteMany(ctx, map[string]any{})
		require.NoError(t, err)
		return m
	})
}

func TestIsMongoURL(t *testing.T) {
	require.True(t, isMongoURL("mongodb://localhost:27017/form-builder"))
	require.True(t, isMongoURL("mongodb+srv://cluster.example.com/forms"))
	require.False(t, isMongoURL("forms.sqlite"))
	require.False(t, isMongoURL("file:forms.sqlite?cache=shared"))
}

var _ Store = (*Mongo)(nil)
var _ Store = (*SQLite)(nil)
