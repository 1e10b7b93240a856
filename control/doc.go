// Package control
// Author: momentics <momentics@gmail.com>
//
// Observability layer for block pools: probe registration for state
// export and a bounded trace of recent allocator events. Nothing here
// sits on the allocation hot path; pools stay allocation-free and
// lock-free while the control side pays for its own synchronization.
package control
