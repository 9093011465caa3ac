// File: spin/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package spin provides power-efficient busy-wait primitives for detecting
// changes in a shared 32-bit atomic counter with sub-microsecond latency.
//
// Three interchangeable strategies implement the same contract: Pause (a
// plain polling loop with a CPU spin hint, available everywhere), MonitorX
// (AMD user-mode MONITORX/MWAITX, Zen2+) and UMonitor (Intel user-mode
// UMONITOR/UMWAIT, Sapphire Rapids+). The vendor strategies let the calling
// thread sleep in a shallow package C-state and are woken by the hardware
// when the monitored cache line is written, cutting package power well below
// a PAUSE loop at a small cost in wake latency.
//
// Detect probes CPUID once at startup and returns the best available Kind;
// With and the kind-switched UntilDifferent/UntilEqual helpers then dispatch
// to a concrete strategy without indirect calls, which matters because the
// owning scheduler invokes them on every barrier synchronization.
//
// The wait operations never time out and accept no cancellation: they return
// only when the watched value satisfies the condition. Callers that need
// bounded waiting must layer it on top. The strategies only ever read the
// watched location, with acquire ordering, so a value observed here makes all
// writes that preceded the producing release-store visible to the waiter.
//
// The vendor strategies wait with no deadline, which relies on the hardware
// never missing a store to a monitored line. That holds empirically for the
// covered processor families but is a documented assumption, not an
// architectural guarantee.
package spin
