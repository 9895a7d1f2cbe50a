package defaults

// Well-known locations.
const (
	// OutputPath is where the snapshot document is published.
	OutputPath = "/var/www/cortana/stats.json"

	// CPUCachePath holds the previous CPU tick sample between invocations.
	CPUCachePath = "/tmp/cortana_cpu_cache"

	// ProcRoot is the kernel counter mount.
	ProcRoot = "/proc"

	// DiskMount is the filesystem reported in the disk block.
	DiskMount = "/"

	// LoopbackHost is the default target for port checks.
	LoopbackHost = "127.0.0.1"

	// ProbeUserAgent identifies HTTP checks to the probed site.
	ProbeUserAgent = "Cortana-Monitor/1.0"
)
