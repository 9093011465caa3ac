// File: internal/concurrency/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// OS-thread pinning for spin-waiting workers. Pinning keeps a waiter on the
// core whose monitor it armed; platform-specific implementations live in
// separate files guarded by build tags, with a no-op stub elsewhere.
package concurrency
