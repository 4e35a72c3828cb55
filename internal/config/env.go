package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

func envStr(k, d string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return d
}

// envReader reads typed environment overrides.  An unset key yields the
// value from the previous layer; a malformed one yields it too but is
// recorded, and Err reports every malformed key at once.
type envReader struct {
	errs []error
}

func (r *envReader) fail(k, v, want string) {
	r.errs = append(r.errs, fmt.Errorf("%s=%q: not a valid %s", k, v, want))
}

// Err joins the recorded parse failures, or returns nil.
func (r *envReader) Err() error {
	return errors.Join(r.errs...)
}

func (r *envReader) Bool(k string, d bool) bool {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return d
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	r.fail(k, v, "boolean")
	return d
}

func (r *envReader) Int(k string, d int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return d
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(k, v, "integer")
		return d
	}
	return n
}

func (r *envReader) Duration(k string, d time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return d
	}
	dur, err := time.ParseDuration(v)
	if err != nil {
		r.fail(k, v, "duration")
		return d
	}
	return dur
}
