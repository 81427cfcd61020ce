package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
)

// signalContext is cancelled on SIGINT or SIGTERM, which stops the world loop and the HTTP server.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// envBool reads a boolean switch such as AC_ENABLE_ADMIN_HTTP; unset or unparsable values give def.
func envBool(key string, def bool) bool {
	if b, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key))); err == nil {
		return b
	}
	return def
}

// defaultEnableAdminHTTP is false for staging and production deployments.
func defaultEnableAdminHTTP() bool {
	env := strings.ToLower(strings.TrimSpace(os.Getenv("DEPLOY_ENV")))
	return env != "staging" && env != "production"
}
