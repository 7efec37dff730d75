package command

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"cinelibri/internal/microservices/http-api/middleware"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenCommand(t *testing.T) {
	const secret = "0123456789abcdef0123456789abcdef"
	t.Setenv("JWT_SECRET", secret)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"token", "--user", "user-42"})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		tokenUserID = ""
	})

	require.NoError(t, rootCmd.Execute())

	id, err := middleware.NewJWTManager(secret, time.Hour).Verify(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, "user-42", id)
}

func TestTokenCommandRequiresUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	rootCmd.SetArgs([]string{"token"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	assert.Error(t, err)
}
