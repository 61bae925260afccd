// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/buildsrc/internal/adapters/config"
	_ "go.trai.ch/buildsrc/internal/adapters/fs"
	_ "go.trai.ch/buildsrc/internal/adapters/lock"
	_ "go.trai.ch/buildsrc/internal/adapters/logger"
	_ "go.trai.ch/buildsrc/internal/adapters/telemetry/progrock"
	// Register app nodes.
	_ "go.trai.ch/buildsrc/internal/app"
)
