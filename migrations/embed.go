// Package migrations holds the goose SQL migrations applied by the server,
// chatctl and the integration test harness.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
