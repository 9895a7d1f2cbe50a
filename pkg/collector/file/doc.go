// Package file reads the small text counter files the kernel exposes under
// /proc.
//
// Usage:
//
//	p := file.NewParser()
//	ticks, err := p.GetUints("/proc/stat", 1, 7)   // first line, fields 1..7
//	secs, err := p.GetFloat("/proc/uptime", 0)
//
// Reads are size capped (1MB default) and must be valid UTF-8.
package file
