package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-api/internal/domain"
)

// IdentityKey is the gin context key holding the authenticated domain.Identity.
const IdentityKey = "identity"

func (g *Gate) Public() gin.HandlerFunc {
	return g.middleware(ModePublic)
}

func (g *Gate) Optional() gin.HandlerFunc {
	return g.middleware(ModeOptional)
}

func (g *Gate) Required() gin.HandlerFunc {
	return g.middleware(ModeRequired)
}

func (g *Gate) middleware(mode Mode) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := g.Authenticate(c.Request.Context(), c.GetHeader("Authorization"), mode)
		if err != nil {
			status, msg := StatusOf(err)
			if status == http.StatusInternalServerError {
				g.logger.WithError(err).Error("authenticate request")
			}
			c.AbortWithStatusJSON(status, gin.H{"error": msg})
			return
		}
		if identity != nil {
			c.Set(IdentityKey, *identity)
			c.Request = c.Request.WithContext(ContextWithIdentity(c.Request.Context(), *identity))
		}
		c.Next()
	}
}

// IdentityFromGin returns the identity attached by the gate, if any.
func IdentityFromGin(c *gin.Context) (domain.Identity, bool) {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return domain.Identity{}, false
	}
	identity, ok := v.(domain.Identity)
	return identity, ok
}
