//go:build !windows

package abi

// System V AMD64: rdi, rsi, rdx, rcx, r8, r9 carry the first six argument
// words; rbx, rbp and r12-r15 are callee-saved; there is no shadow space.
var current = Convention{
	Name:          "sysv-amd64",
	RegisterArgs:  6,
	CalleeSaved:   1,
	ShadowWords:   0,
	MagicOffset:   0x68,
	CleanupOffset: 9,
}
