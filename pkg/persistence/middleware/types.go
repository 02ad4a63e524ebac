// Package middleware provides composable wrappers around an entry store:
// at-rest encryption and PII masking.
package middleware

import "github.com/aretw0/espalier/pkg/ports"

// Middleware allows wrapping an EntryStore to add behavior.
type Middleware func(ports.EntryStore) ports.EntryStore
