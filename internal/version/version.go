// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Asteroid impact scenario: aimed flight, staged detonation, Impact view
// 0.2.0 - Camera focus machine, info cards, mouse picking, telemetry endpoint
// 0.1.0 - Initial release: animated orrery, speed modes, starfield, headless ephemeris
