// Package checker decides whether a monitored unit is alive.
//
// Each config.CheckKind has a Checker:
//
//   - SystemdChecker asks the service manager for the unit's active state
//     and, when active, its uptime. Timeouts and a missing manager yield
//     unknown; a definite non-active answer yields stopped.
//   - PortChecker opens a TCP connection. Never unknown.
//   - HTTPChecker sends a HEAD request and treats any status below 400 as
//     running. Never unknown.
//
// Registry dispatches by kind and reports unknown for kinds it has no
// checker for. Exists is the filter applied to optional services before they
// are checked at all.
package checker
