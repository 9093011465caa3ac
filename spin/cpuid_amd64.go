//go:build amd64

// File: spin/cpuid_amd64.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Minimal CPUID access for feature detection. golang.org/x/sys/cpu does not
// export the WAITPKG or MONITORX bits, so the two leaves are read directly.

package spin

// cpuid executes the CPUID instruction for the given leaf and subleaf.
func cpuid(leaf, sub uint32) (eax, ebx, ecx, edx uint32)

// vendorIsAMD reports whether CPUID leaf 0 returns "AuthenticAMD".
func vendorIsAMD() bool {
	_, ebx, ecx, edx := cpuid(0, 0)
	return ebx == 0x68747541 && edx == 0x69746E65 && ecx == 0x444D4163
}

// maxCPUIDLevel returns the highest supported standard CPUID leaf.
func maxCPUIDLevel() uint32 {
	eax, _, _, _ := cpuid(0, 0)
	return eax
}
