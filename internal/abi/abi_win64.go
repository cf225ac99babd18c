//go:build windows

package abi

// Microsoft x64: rcx, rdx, r8, r9 carry the first four argument words; rbx,
// rbp, rdi, rsi and r12-r15 are callee-saved; every call site reserves 32
// bytes (four machine words) of shadow space above the return address.
var current = Convention{
	Name:          "win64",
	RegisterArgs:  4,
	CalleeSaved:   3,
	ShadowWords:   4,
	MagicOffset:   0x98,
	CleanupOffset: 13,
}
