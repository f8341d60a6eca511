package handler

import (
	"io"
	"net/http"

	"burst_buy/models"
	"burst_buy/pkg/middleware"
	"burst_buy/pkg/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Health(c *gin.Context) {
	wrapOkJSON(c, map[string]interface{}{
		"status": "ok",
	})
}

// Создание вида: параллельно грузит курсы и баланс.
// Ошибка загрузки не мешает созданию, она попадает в load_error.
func (h *Handler) CreateView(c *gin.Context) {
	view := h.service.Purchase.NewView(c.Request.Context())
	c.JSON(http.StatusCreated, viewResponse(view))
}

func (h *Handler) GetView(c *gin.Context) {
	c.JSON(http.StatusOK, viewResponse(middleware.GetView(c)))
}

func (h *Handler) CloseView(c *gin.Context) {
	if err := h.service.Purchase.CloseView(c.Param("id")); err != nil {
		serviceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) UpdatePurchase(c *gin.Context) {
	var input models.PurchaseIntent
	if err := c.ShouldBindJSON(&input); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	view := middleware.GetView(c)
	if err := view.SetFiatAmount(input.FiatAmount); err != nil {
		serviceError(c, err)
		return
	}
	if input.Currency != "" {
		view.SetCurrency(input.Currency)
	}

	wrapOkJSON(c, map[string]interface{}{
		"quote": view.Quote(),
	})
}

func (h *Handler) GetQuote(c *gin.Context) {
	wrapOkJSON(c, map[string]interface{}{
		"quote": middleware.GetView(c).Quote(),
	})
}

// Pay редирект на страницу оплаты
func (h *Handler) Pay(c *gin.Context) {
	c.Redirect(http.StatusFound, middleware.GetView(c).RedirectLink())
}

func (h *Handler) GetSuggestions(c *gin.Context) {
	wrapOkJSON(c, map[string]interface{}{
		"currencies": middleware.GetView(c).Suggest(c.Query("term")),
	})
}

// StreamSuggestions отдаёт списки подсказок через Server-Sent Events,
// события приходят в DispatchEvent.
func (h *Handler) StreamSuggestions(c *gin.Context) {
	out := middleware.GetView(c).OpenSuggestions(c.Request.Context())

	c.Stream(func(w io.Writer) bool {
		list, ok := <-out
		if !ok {
			return false
		}
		c.SSEvent("suggestions", list)
		return true
	})
}

func (h *Handler) DispatchEvent(c *gin.Context) {
	var event models.Event
	if err := c.ShouldBindJSON(&event); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid event")
		return
	}

	if err := middleware.GetView(c).Dispatch(event); err != nil {
		serviceError(c, err)
		return
	}
	c.Status(http.StatusAccepted)
}

func viewResponse(view *service.PurchaseView) models.ViewResponse {
	resp := models.ViewResponse{
		ID:      view.ID(),
		Rates:   view.Rates(),
		Balance: view.Balance(),
		Quote:   view.Quote(),
	}
	if err := view.LoadError(); err != nil {
		resp.LoadError = err.Error()
	}
	return resp
}
