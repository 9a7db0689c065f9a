package server

import (
	"log"

	"github.com/lab1702/ofbot/bot"
	"github.com/lab1702/ofbot/config"
)

// Debug flags for various subsystems
var (
	DebugBots   = false // Set to true to log bot joins, deaths and objective changes
	DebugRoutes = false // Set to true to log every planned route
)

// ApplyDebug switches the server and bot debug logging from the tuning file
func ApplyDebug(d config.Debug) {
	DebugBots = d.Bots
	DebugRoutes = d.Routes
	bot.DebugSpies = d.Spies
	bot.DebugSquads = d.Squads
	bot.DebugSniper = d.Sniper
}

// logBot logs bot lifecycle decisions when debugging is enabled
func logBot(format string, args ...any) {
	if DebugBots {
		log.Printf("[BOT] "+format, args...)
	}
}

// logRoute logs a planned route when debugging is enabled
func logRoute(name string, route bot.RouteType, goal, length int, cost float64) {
	if DebugRoutes {
		log.Printf("[ROUTE] %s: %s route to area %d, %d areas, cost %.0f", name, route, goal, length, cost)
	}
}
