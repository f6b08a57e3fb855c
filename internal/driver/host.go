package driver

import "github.com/klauspost/cpuid/v2"

// HostInfo describes the processor a run executed on.
type HostInfo struct {
	CPU           string `json:"cpu"`
	Vendor        string `json:"vendor"`
	PhysicalCores int    `json:"physical_cores"`
	LogicalCores  int    `json:"logical_cores"`
	Hz            int64  `json:"hz"`
	CacheLine     int    `json:"cache_line"`
	L2            int    `json:"l2_bytes"`
}

// Host reports the current processor as detected by cpuid.
// Fields cpuid cannot determine are left zero.
func Host() HostInfo {
	return HostInfo{
		CPU:           cpuid.CPU.BrandName,
		Vendor:        cpuid.CPU.VendorString,
		PhysicalCores: cpuid.CPU.PhysicalCores,
		LogicalCores:  cpuid.CPU.LogicalCores,
		Hz:            cpuid.CPU.Hz,
		CacheLine:     cpuid.CPU.CacheLine,
		L2:            cpuid.CPU.Cache.L2,
	}
}
