package constants

import "time"

// RequeueShort is the delay before retrying a pass that hit a transient API error.
const RequeueShort = 5 * time.Second
