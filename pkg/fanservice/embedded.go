// Package fanservice installs and manages the systemd unit wrapping the
// fan-performance Python daemon.
package fanservice

import _ "embed"

// unitTemplate contains the systemd unit with ${PYTHON} and ${SCRIPT_PATH}
// placeholders substituted at install time.
//
//go:embed fan-performance.service
var unitTemplate string
