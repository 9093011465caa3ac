// control/doc.go
// Author: momentics <momentics@gmail.com>
//
// Control plane for the spin library and its pools: a dynamic config store
// carrying the strategy disable mask, a metrics registry the executor
// publishes into, and named debug probes for runtime inspection.
package control
