package middleware

import "time"

// DefaultSlowRequestThreshold is the duration past which a request is logged as slow.
const DefaultSlowRequestThreshold = 5 * time.Second
