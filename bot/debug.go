package bot

import "log"

// Debug flags for bot subsystems
var (
	DebugSpies  = false // Set to true to log suspicion and realization
	DebugSquads = false // Set to true to log squad membership changes
	DebugSniper = false // Set to true to log sniper spot accumulation
)

func logSpy(format string, args ...any) {
	if DebugSpies {
		log.Printf("[SPY] "+format, args...)
	}
}

func logSquad(format string, args ...any) {
	if DebugSquads {
		log.Printf("[SQUAD] "+format, args...)
	}
}

func logSniper(format string, args ...any) {
	if DebugSniper {
		log.Printf("[SNIPER] "+format, args...)
	}
}
