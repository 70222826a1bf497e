/*
NAME
  mutex.go

DESCRIPTION
  mutex.go provides scopedUnlock, a temporary-release helper over
  sync.Mutex. All mutating Session entry points acquire the mutex;
  long-running sink calls run with it temporarily released so re-entry
  from sink back into the Session stays safe without a re-entrant
  lock.

AUTHOR
  Saxon Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package session

import "sync"

// scopedUnlock releases mu, runs fn, then reacquires mu before
// returning. The caller must hold mu locked on entry. fn must not
// assume any Session field is stable while it runs.
func scopedUnlock(mu *sync.Mutex, fn func()) {
	mu.Unlock()
	defer mu.Lock()
	fn()
}
