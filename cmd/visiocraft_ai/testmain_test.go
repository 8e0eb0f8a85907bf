package main

import (
	"os"
	"testing"

	"github.com/joho/godotenv"
)

// TestMain mirrors main: a local .env (GOOGLE_API_KEY, PORT, ...) is visible
// to the command tests. Tests that depend on a variable set it with t.Setenv.
func TestMain(m *testing.M) {
	_ = godotenv.Load()

	os.Exit(m.Run())
}
