package middleware

import (
	"net/http"

	"burst_buy/pkg/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const viewKey = "view"

type ViewFinder interface {
	View(id string) (*service.PurchaseView, error)
}

// ViewMiddleware находит вид по :id и кладёт его в контекст
func ViewMiddleware(views ViewFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		view, err := views.View(id)
		if err != nil {
			logrus.Infof("ViewMiddleware: %s", err)
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "view not found"})
			return
		}
		c.Set(viewKey, view)
		c.Next()
	}
}

func GetView(c *gin.Context) *service.PurchaseView {
	return c.MustGet(viewKey).(*service.PurchaseView)
}
