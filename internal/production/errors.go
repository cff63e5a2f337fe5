// Coffeecast - Coffee Production Forecasting by Country
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/coffeecast

package production

import (
	"fmt"
	"strings"
)

// SchemaError reports a wide table that cannot be transformed.
type SchemaError struct {
	Reason  string
	Columns []string
}

func (e *SchemaError) Error() string {
	if len(e.Columns) == 0 {
		return "production schema: " + e.Reason
	}
	return fmt.Sprintf("production schema: %s (columns: %s)", e.Reason, strings.Join(e.Columns, ", "))
}
