package middleware

import "github.com/gin-gonic/gin"

// ActorHeader carries the caller identity set by the portal frontend.
// Authentication itself happens upstream; an empty actor is tolerated
// and recorded as nil in the audit trail.
const ActorHeader = "X-Actor-ID"

const actorKey = "actorID"

// Actor extracts the caller identity header into the request context.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(actorKey, c.GetHeader(ActorHeader))
		c.Next()
	}
}

// ActorID returns the caller identity for the current request, empty
// when the header was absent.
func ActorID(c *gin.Context) string {
	v, _ := c.Get(actorKey)
	s, _ := v.(string)
	return s
}
