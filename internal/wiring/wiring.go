// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/alloy/internal/adapters/cas"
	_ "go.trai.ch/alloy/internal/adapters/catalog"
	_ "go.trai.ch/alloy/internal/adapters/config"
	_ "go.trai.ch/alloy/internal/adapters/fetch"
	_ "go.trai.ch/alloy/internal/adapters/logger"
	_ "go.trai.ch/alloy/internal/adapters/shell"
	_ "go.trai.ch/alloy/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/alloy/internal/app"
	_ "go.trai.ch/alloy/internal/engine/resolver"
)
