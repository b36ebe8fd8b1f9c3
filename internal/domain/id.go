package domain

import (
	"fmt"
	"sync/atomic"
	"time"
)

var idSeq atomic.Uint64

// NewReviewID returns an identifier built from the current timestamp and a
// process-wide monotonic counter, making collisions negligible even for
// concurrent creates within one millisecond.
func NewReviewID() string {
	return newID("review")
}

func NewCommentID() string {
	return newID("comment")
}

func newID(prefix string) string {
	return fmt.Sprintf("%s-%d-%d", prefix, time.Now().UnixMilli(), idSeq.Add(1))
}
